package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/entity"
	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const reportCachePrefix = "scm:shortage:report:"

type ShortageService struct {
	masterRepo    *repository.MasterRepository
	orderRepo     *repository.OrderRepository
	inventoryRepo *repository.InventoryRepository
	analysisRepo  *repository.AnalysisRepository
	rdb           *redis.Client // 可为nil，关闭缓存
	logger        *zap.Logger
	cacheTTL      time.Duration
}

func NewShortageService(
	masterRepo *repository.MasterRepository,
	orderRepo *repository.OrderRepository,
	inventoryRepo *repository.InventoryRepository,
	analysisRepo *repository.AnalysisRepository,
	rdb *redis.Client,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *ShortageService {
	if cacheTTL <= 0 {
		cacheTTL = 24 * time.Hour
	}
	return &ShortageService{
		masterRepo:    masterRepo,
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		analysisRepo:  analysisRepo,
		rdb:           rdb,
		logger:        logger,
		cacheTTL:      cacheTTL,
	}
}

// Run 执行一次缺料分析：建运行记录、加载快照、纯计算、缓存结果。
// 全量计算在大数据集上可能耗时数分钟，调用方应放到交互路径之外执行。
func (s *ShortageService) Run(ctx context.Context, filters Filters, opts Options, userID string) (*entity.AnalysisRun, *entity.AnalysisResult, error) {
	if len(filters.Statuses) == 0 {
		return nil, nil, ErrNoStatusFilter
	}

	now := time.Now()
	run := &entity.AnalysisRun{
		ID:             uuid.New().String(),
		RunCode:        fmt.Sprintf("SA-%s%04d", now.Format("20060102"), now.UnixNano()%10000),
		Status:         entity.RunStatusRunning,
		Customers:      strings.Join(filters.Customers, ","),
		Statuses:       strings.Join(filters.Statuses, ","),
		IncludeBlocked: opts.IncludeBlocked,
		StartedAt:      now,
		CreatedBy:      userID,
	}
	if err := s.analysisRepo.CreateRun(run); err != nil {
		return nil, nil, fmt.Errorf("create analysis run: %w", err)
	}

	result, err := s.compute(ctx, filters, opts)
	completedAt := time.Now()
	run.CompletedAt = &completedAt
	if err != nil {
		run.Status = entity.RunStatusFailed
		run.Message = err.Error()
		s.analysisRepo.UpdateRun(run)
		return run, nil, err
	}

	run.Message = result.Message
	if result.Message != "" {
		run.Status = entity.RunStatusEmpty
	} else {
		run.Status = entity.RunStatusCompleted
	}
	if !result.SnapshotDate.IsZero() {
		d := result.SnapshotDate
		run.SnapshotDate = &d
	}
	run.R1Rows = len(result.R1)
	if result.R2 != nil {
		run.R2Rows = len(result.R2.Rows)
	}
	run.R3Rows = len(result.R3)
	if err := s.analysisRepo.UpdateRun(run); err != nil {
		return run, result, fmt.Errorf("update analysis run: %w", err)
	}

	s.cacheResult(ctx, run.ID, result)
	s.logger.Info("shortage analysis completed",
		zap.String("run_code", run.RunCode),
		zap.String("status", run.Status),
		zap.Int("r1_rows", run.R1Rows),
		zap.Int("r2_rows", run.R2Rows),
		zap.Int("r3_rows", run.R3Rows),
		zap.Duration("elapsed", completedAt.Sub(now)),
	)
	return run, result, nil
}

// compute 加载快照并执行纯分析；加载失败与空结果是两类结局，前者报错
func (s *ShortageService) compute(ctx context.Context, filters Filters, opts Options) (*entity.AnalysisResult, error) {
	ds, err := s.loadDataset(filters)
	if err != nil {
		return nil, err
	}
	return Analyze(ds, filters, opts)
}

func (s *ShortageService) loadDataset(filters Filters) (Dataset, error) {
	var ds Dataset
	var err error

	if ds.Orders, err = s.orderRepo.ListByStatuses(filters.Statuses); err != nil {
		return ds, fmt.Errorf("load orders: %w", err)
	}
	if ds.Products, err = s.masterRepo.ListProducts(filters.Customers); err != nil {
		return ds, fmt.Errorf("load products: %w", err)
	}
	if ds.BOM, err = s.masterRepo.ListBOM(); err != nil {
		return ds, fmt.Errorf("load bom: %w", err)
	}
	if ds.SnapshotDate, ds.Inventory, err = s.inventoryRepo.LatestSnapshot(); err != nil {
		return ds, fmt.Errorf("load inventory snapshot: %w", err)
	}
	if ds.Substitutes, err = s.masterRepo.ListSubstitutes(); err != nil {
		return ds, fmt.Errorf("load substitutes: %w", err)
	}
	if ds.FieldService, err = s.inventoryRepo.ListFieldService(); err != nil {
		return ds, fmt.Errorf("load field service inventory: %w", err)
	}
	if ds.Sites, err = s.masterRepo.ListSiteCodes(); err != nil {
		return ds, fmt.Errorf("load plant sites: %w", err)
	}
	return ds, nil
}

// GetReport 取某次运行的报表。优先命中缓存，过期则按该次运行的过滤条件
// 对当前快照重算并回填缓存。
func (s *ShortageService) GetReport(ctx context.Context, runID string) (*entity.AnalysisResult, error) {
	if cached := s.cachedResult(ctx, runID); cached != nil {
		return cached, nil
	}

	run, err := s.analysisRepo.GetRunByID(runID)
	if err != nil {
		return nil, fmt.Errorf("analysis run not found: %w", err)
	}
	filters := Filters{
		Customers: splitCSV(run.Customers),
		Statuses:  splitCSV(run.Statuses),
	}
	result, err := s.compute(ctx, filters, Options{IncludeBlocked: run.IncludeBlocked})
	if err != nil {
		return nil, err
	}
	s.cacheResult(ctx, runID, result)
	return result, nil
}

func (s *ShortageService) GetRun(id string) (*entity.AnalysisRun, error) {
	return s.analysisRepo.GetRunByID(id)
}

func (s *ShortageService) GetLatestRun() (*entity.AnalysisRun, error) {
	return s.analysisRepo.GetLatestRun()
}

func (s *ShortageService) ListRuns(page, size int) ([]entity.AnalysisRun, int64, error) {
	return s.analysisRepo.ListRuns(page, size)
}

func (s *ShortageService) cacheResult(ctx context.Context, runID string, result *entity.AnalysisResult) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, reportCachePrefix+runID, data, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("cache shortage report failed", zap.String("run_id", runID), zap.Error(err))
	}
}

func (s *ShortageService) cachedResult(ctx context.Context, runID string) *entity.AnalysisResult {
	if s.rdb == nil {
		return nil
	}
	data, err := s.rdb.Get(ctx, reportCachePrefix+runID).Bytes()
	if err != nil {
		return nil
	}
	var result entity.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return &result
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
