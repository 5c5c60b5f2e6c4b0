package service

import (
	"sort"

	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/entity"
)

// demandKey 需求聚合粒度：部件×基地，是净算结果的唯一键
type demandKey struct {
	PKID      string
	PlantSite string
}

// componentDemand 部件×基地的净算结果
type componentDemand struct {
	PKID        string
	PlantSite   string
	RequiredQty float64
	OnHandQty   float64
	ShortageQty float64
	IsShort     bool
	IsUrgent    bool
}

// inventoryByKey 最新快照按 (部件, 基地) 建索引，同键多行累加
func inventoryByKey(inv []entity.InventorySnapshot) map[demandKey]float64 {
	m := make(map[demandKey]float64, len(inv))
	for _, row := range inv {
		m[demandKey{row.PKID, row.PlantSite}] += row.Qty
	}
	return m
}

// netDemand 按部件×基地聚合需求并与最新库存快照左连接。
// 快照缺行按零库存处理；加急属性按部件级传播：只要任一加急订单
// 用到该部件，该部件所有基地的行都标记加急。
func netDemand(exploded []explodedRow, details []orderDetail, inv []entity.InventorySnapshot) []componentDemand {
	urgentPKIDs := make(map[string]struct{})
	agg := make(map[demandKey]float64)
	for _, row := range exploded {
		d := details[row.DetailIdx]
		key := demandKey{row.ChildPKID, d.Product.PlantSite}
		agg[key] += row.RequiredQty
		if d.Order.IsUrgent() {
			urgentPKIDs[row.ChildPKID] = struct{}{}
		}
	}

	onHand := inventoryByKey(inv)
	result := make([]componentDemand, 0, len(agg))
	for key, required := range agg {
		stock := onHand[key]
		shortage := required - stock
		if shortage < 0 {
			shortage = 0
		}
		_, urgent := urgentPKIDs[key.PKID]
		result = append(result, componentDemand{
			PKID:        key.PKID,
			PlantSite:   key.PlantSite,
			RequiredQty: required,
			OnHandQty:   stock,
			ShortageQty: shortage,
			IsShort:     shortage > 0,
			IsUrgent:    urgent,
		})
	}

	sort.Slice(result, func(a, b int) bool {
		if result[a].PKID != result[b].PKID {
			return result[a].PKID < result[b].PKID
		}
		return result[a].PlantSite < result[b].PlantSite
	})
	return result
}
