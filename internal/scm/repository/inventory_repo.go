package repository

import (
	"time"

	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/entity"
	"gorm.io/gorm"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// LatestSnapshot 返回全表最新快照日及该日的全部库存行
// 快照表为空时返回零值日期和空结果，由调用方按零库存处理
func (r *InventoryRepository) LatestSnapshot() (time.Time, []entity.InventorySnapshot, error) {
	var result struct{ MaxDate *time.Time }
	if err := r.db.Model(&entity.InventorySnapshot{}).
		Select("MAX(snapshot_date) as max_date").Scan(&result).Error; err != nil {
		return time.Time{}, nil, err
	}
	if result.MaxDate == nil {
		return time.Time{}, nil, nil
	}
	var rows []entity.InventorySnapshot
	err := r.db.Where("snapshot_date = ?", *result.MaxDate).
		Order("pkid, plant_site").Find(&rows).Error
	return *result.MaxDate, rows, err
}

// SnapshotDates 最近的快照日列表（新到旧）
func (r *InventoryRepository) SnapshotDates(limit int) ([]time.Time, error) {
	if limit <= 0 {
		limit = 4
	}
	var dates []time.Time
	err := r.db.Model(&entity.InventorySnapshot{}).
		Distinct("snapshot_date").Order("snapshot_date DESC").Limit(limit).
		Pluck("snapshot_date", &dates).Error
	return dates, err
}

// ListFieldService 服务网点成品库存全量
func (r *InventoryRepository) ListFieldService() ([]entity.FieldServiceStock, error) {
	var rows []entity.FieldServiceStock
	err := r.db.Order("pn, location").Find(&rows).Error
	return rows, err
}
