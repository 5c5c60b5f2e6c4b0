package entity

import (
	"time"
)

// Product 成品主数据（Product_Master）
// PN 为唯一主键，一个成品只归属一个生产基地
type Product struct {
	PN        string    `json:"pn" gorm:"primaryKey;size:64;not null"`
	PartName  string    `json:"part_name" gorm:"size:128;not null"`
	CarType   string    `json:"car_type" gorm:"size:64"`
	Customer  string    `json:"customer" gorm:"size:64;not null;index"`
	PlantSite string    `json:"plant_site" gorm:"size:32;not null;index"`
	RegDate   time.Time `json:"reg_date" gorm:"autoCreateTime"`
}

func (Product) TableName() string {
	return "product_master"
}

// PlantSite 生产基地主数据（Plant_Site_Master）
type PlantSite struct {
	SiteCode string `json:"site_code" gorm:"primaryKey;size:32;not null"`
	SiteName string `json:"site_name" gorm:"size:128"`
	Region   string `json:"region" gorm:"size:64"`
}

func (PlantSite) TableName() string {
	return "plant_site_master"
}

// BOMLine BOM明细（BOM_Master）：父成品到子部件的用量关系
// BOMQty 为每个成品消耗的部件数量，允许非整数
type BOMLine struct {
	ID        uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	ParentPN  string  `json:"parent_pn" gorm:"size:64;not null;index"`
	ChildPKID string  `json:"child_pkid" gorm:"size:64;not null;index"`
	BOMQty    float64 `json:"bom_qty" gorm:"type:decimal(12,4);not null"`
}

func (BOMLine) TableName() string {
	return "bom_master"
}

// Substitute 代替部件主数据（Substitute_Master）
// 一个部件可登记多个代替品；代替品仅用于报表提示，不参与缺料净算
type Substitute struct {
	SubID              uint   `json:"sub_id" gorm:"primaryKey;autoIncrement;column:sub_id"`
	ChildPKID          string `json:"child_pkid" gorm:"size:64;not null;index"`
	ChildPKIDName      string `json:"child_pkid_name" gorm:"size:128"`
	SubstitutePKID     string `json:"substitute_pkid" gorm:"size:64;not null;index"`
	SubstitutePKIDName string `json:"substitute_pkid_name" gorm:"size:128"`
	Description        string `json:"description" gorm:"type:text"`
}

func (Substitute) TableName() string {
	return "substitute_master"
}
