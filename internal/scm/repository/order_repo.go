package repository

import (
	"strings"

	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/entity"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// ListByStatuses 按状态集合读取订单，状态匹配不区分大小写
func (r *OrderRepository) ListByStatuses(statuses []string) ([]entity.Order, error) {
	upper := make([]string, 0, len(statuses))
	for _, s := range statuses {
		upper = append(upper, strings.ToUpper(strings.TrimSpace(s)))
	}
	var orders []entity.Order
	err := r.db.Where("UPPER(TRIM(order_status)) IN ?", upper).
		Order("order_date, order_key").Find(&orders).Error
	return orders, err
}

type OrderListParams struct {
	Status  string
	PN      string
	Keyword string
	Page    int
	Size    int
}

// List 订单分页查询，供只读订单看板使用
func (r *OrderRepository) List(params OrderListParams) ([]entity.Order, int64, error) {
	query := r.db.Model(&entity.Order{})
	if params.Status != "" {
		query = query.Where("UPPER(order_status) = ?", strings.ToUpper(params.Status))
	}
	if params.PN != "" {
		query = query.Where("pn = ?", strings.ToUpper(strings.TrimSpace(params.PN)))
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("order_key ILIKE ? OR pn ILIKE ?", kw, kw)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var orders []entity.Order
	err := query.Order("order_date DESC, order_key").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).Find(&orders).Error
	return orders, total, err
}
