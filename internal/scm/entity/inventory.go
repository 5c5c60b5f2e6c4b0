package entity

import (
	"time"
)

// InventorySnapshot 部件库存快照（Inventory_Master）
// 联合主键 (PKID, PLANT_SITE, SNAPSHOT_DATE)；分析只使用全表最新快照日
type InventorySnapshot struct {
	PKID         string    `json:"pkid" gorm:"primaryKey;size:64;not null"`
	PlantSite    string    `json:"plant_site" gorm:"primaryKey;size:32;not null"`
	SnapshotDate time.Time `json:"snapshot_date" gorm:"primaryKey;not null"`
	Qty          float64   `json:"pkid_qty" gorm:"column:pkid_qty;type:decimal(12,4);not null;default:0"`
}

func (InventorySnapshot) TableName() string {
	return "inventory_master"
}

// FieldServiceStock 售后服务网点的成品库存（AS_Inventory）
// 按成品PN计，而非部件；在BOM展开前先抵扣订单未交数量
type FieldServiceStock struct {
	ID       uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	PN       string  `json:"pn" gorm:"size:64;not null;index"`
	Location string  `json:"location" gorm:"size:64"`
	Qty      float64 `json:"qty" gorm:"type:decimal(12,4);not null;default:0"`
}

func (FieldServiceStock) TableName() string {
	return "as_inventory"
}
