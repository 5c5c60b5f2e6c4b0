package repository

import "gorm.io/gorm"

// Repositories SCM 仓库集合
type Repositories struct {
	Master    *MasterRepository
	Order     *OrderRepository
	Inventory *InventoryRepository
	Analysis  *AnalysisRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Master:    NewMasterRepository(db),
		Order:     NewOrderRepository(db),
		Inventory: NewInventoryRepository(db),
		Analysis:  NewAnalysisRepository(db),
	}
}
