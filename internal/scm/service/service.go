package service

import (
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Services SCM 服务集合
type Services struct {
	Master   *MasterService
	Shortage *ShortageService
	Export   *ExportService
}

func NewServices(repos *repository.Repositories, rdb *redis.Client, mc *minio.Client, bucket string, logger *zap.Logger, cacheTTL time.Duration) *Services {
	shortage := NewShortageService(repos.Master, repos.Order, repos.Inventory, repos.Analysis, rdb, logger, cacheTTL)
	return &Services{
		Master:   NewMasterService(repos.Master, repos.Order),
		Shortage: shortage,
		Export:   NewExportService(shortage, mc, bucket, logger),
	}
}
