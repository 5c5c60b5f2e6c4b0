package repository

import (
	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/entity"
	"gorm.io/gorm"
)

type AnalysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) CreateRun(run *entity.AnalysisRun) error {
	return r.db.Create(run).Error
}

func (r *AnalysisRepository) UpdateRun(run *entity.AnalysisRun) error {
	return r.db.Save(run).Error
}

func (r *AnalysisRepository) GetRunByID(id string) (*entity.AnalysisRun, error) {
	var run entity.AnalysisRun
	err := r.db.Where("id = ?", id).First(&run).Error
	return &run, err
}

func (r *AnalysisRepository) GetLatestRun() (*entity.AnalysisRun, error) {
	var run entity.AnalysisRun
	err := r.db.Order("created_at DESC").First(&run).Error
	return &run, err
}

func (r *AnalysisRepository) ListRuns(page, size int) ([]entity.AnalysisRun, int64, error) {
	var total int64
	r.db.Model(&entity.AnalysisRun{}).Count(&total)
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	var runs []entity.AnalysisRun
	err := r.db.Order("created_at DESC").Offset((page - 1) * size).Limit(size).Find(&runs).Error
	return runs, total, err
}
