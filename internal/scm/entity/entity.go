package entity

import "gorm.io/gorm"

// AutoMigrate 自动迁移所有SCM表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// 主数据
		&Product{},
		&PlantSite{},
		&BOMLine{},
		&Substitute{},

		// 订单与库存快照
		&Order{},
		&InventorySnapshot{},
		&FieldServiceStock{},

		// 缺料分析
		&AnalysisRun{},
	)
}
