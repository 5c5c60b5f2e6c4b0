package service

import (
	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/entity"
	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/repository"
)

// MasterService 主数据只读查询，供过滤项下拉和看板使用。
// 主数据的登记、修改与CSV导入由后台管理工具负责，本服务不做写入。
type MasterService struct {
	masterRepo *repository.MasterRepository
	orderRepo  *repository.OrderRepository
}

func NewMasterService(masterRepo *repository.MasterRepository, orderRepo *repository.OrderRepository) *MasterService {
	return &MasterService{masterRepo: masterRepo, orderRepo: orderRepo}
}

func (s *MasterService) ListCustomers() ([]string, error) {
	return s.masterRepo.DistinctCustomers()
}

func (s *MasterService) ListPlantSites() ([]entity.PlantSite, error) {
	return s.masterRepo.ListPlantSites()
}

// AnalysisStatuses 可作为分析输入的订单状态
func (s *MasterService) AnalysisStatuses() []string {
	return []string{entity.OrderStatusOpen, entity.OrderStatusUrgent}
}

func (s *MasterService) ListProducts(customers []string) ([]entity.Product, error) {
	return s.masterRepo.ListProducts(customers)
}

func (s *MasterService) ListOrders(params repository.OrderListParams) ([]entity.Order, int64, error) {
	return s.orderRepo.List(params)
}
