package repository

import (
	"strings"

	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/entity"
	"gorm.io/gorm"
)

type MasterRepository struct {
	db *gorm.DB
}

func NewMasterRepository(db *gorm.DB) *MasterRepository {
	return &MasterRepository{db: db}
}

// ListProducts 按客户过滤成品主数据；customers 为空表示不过滤
func (r *MasterRepository) ListProducts(customers []string) ([]entity.Product, error) {
	query := r.db.Model(&entity.Product{})
	if len(customers) > 0 {
		upper := make([]string, 0, len(customers))
		for _, c := range customers {
			upper = append(upper, strings.ToUpper(strings.TrimSpace(c)))
		}
		query = query.Where("UPPER(TRIM(customer)) IN ?", upper)
	}
	var products []entity.Product
	err := query.Order("pn").Find(&products).Error
	return products, err
}

// ListPlantSites 全部生产基地，按基地代码排序
func (r *MasterRepository) ListPlantSites() ([]entity.PlantSite, error) {
	var sites []entity.PlantSite
	err := r.db.Order("site_code").Find(&sites).Error
	return sites, err
}

// ListSiteCodes 基地代码列表，宽表列序以此为准
func (r *MasterRepository) ListSiteCodes() ([]string, error) {
	var codes []string
	err := r.db.Model(&entity.PlantSite{}).Order("site_code").Pluck("site_code", &codes).Error
	return codes, err
}

func (r *MasterRepository) ListBOM() ([]entity.BOMLine, error) {
	var lines []entity.BOMLine
	err := r.db.Order("parent_pn, child_pkid").Find(&lines).Error
	return lines, err
}

func (r *MasterRepository) ListSubstitutes() ([]entity.Substitute, error) {
	var subs []entity.Substitute
	err := r.db.Order("child_pkid, substitute_pkid").Find(&subs).Error
	return subs, err
}

// DistinctCustomers 客户列表，用于过滤项下拉
func (r *MasterRepository) DistinctCustomers() ([]string, error) {
	var customers []string
	err := r.db.Model(&entity.Product{}).Distinct("customer").Order("customer").Pluck("customer", &customers).Error
	return customers, err
}
