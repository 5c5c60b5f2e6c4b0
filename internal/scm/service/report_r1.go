package service

import (
	"sort"
	"strings"

	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/entity"
)

// r1GroupKey R1 分组键，加急标记取订单自身的标记
type r1GroupKey struct {
	UrgentFlag  string
	Customer    string
	PlantSite   string
	OrderStatus string
	CarType     string
	PartName    string
	PN          string
}

// r1ShortKey 缺料明细的关联键，粒度比分组键粗（不含加急/车型/品名）
type r1ShortKey struct {
	Customer    string
	PlantSite   string
	OrderStatus string
	PN          string
}

// buildR1 订单/成品级汇总：对订单明细分组聚合，再左连接各组涉及的缺料部件清单。
// 没有缺料部件的组保留零计数与空清单。
func buildR1(details []orderDetail, exploded []explodedRow, demand []componentDemand, fsTotals map[string]float64) []entity.R1Row {
	shortByKey := make(map[demandKey]bool, len(demand))
	for _, d := range demand {
		shortByKey[demandKey{d.PKID, d.PlantSite}] = d.IsShort
	}

	// 各 (客户, 基地, 状态, PN) 组涉及的缺料部件集合
	shortPKIDs := make(map[r1ShortKey]map[string]struct{})
	for _, row := range exploded {
		d := details[row.DetailIdx]
		if !shortByKey[demandKey{row.ChildPKID, d.Product.PlantSite}] {
			continue
		}
		key := r1ShortKey{d.Product.Customer, d.Product.PlantSite, d.Order.Status, d.Product.PN}
		if shortPKIDs[key] == nil {
			shortPKIDs[key] = make(map[string]struct{})
		}
		shortPKIDs[key][row.ChildPKID] = struct{}{}
	}

	groups := make(map[r1GroupKey]*entity.R1Row)
	var order []r1GroupKey
	for _, d := range details {
		key := r1GroupKey{
			UrgentFlag:  d.Order.UrgentFlag,
			Customer:    d.Product.Customer,
			PlantSite:   d.Product.PlantSite,
			OrderStatus: d.Order.Status,
			CarType:     d.Product.CarType,
			PartName:    d.Product.PartName,
			PN:          d.Product.PN,
		}
		row, ok := groups[key]
		if !ok {
			row = &entity.R1Row{
				UrgentFlag:  key.UrgentFlag,
				Customer:    key.Customer,
				PlantSite:   key.PlantSite,
				OrderStatus: key.OrderStatus,
				CarType:     key.CarType,
				PartName:    key.PartName,
				PN:          key.PN,
				// 服务网点库存按PN计，同组取同一个池量
				FieldServiceQty: fsTotals[d.Product.PN],
			}
			groups[key] = row
			order = append(order, key)
		}
		row.OrderCount++
		row.TotalOrderQty += d.Order.OrderQty
		row.TotalDeliveredQty += d.Order.DeliveredQty
		row.TotalRemainingQty += d.RemainingQty
	}

	rows := make([]entity.R1Row, 0, len(groups))
	for _, key := range order {
		row := groups[key]
		if set := shortPKIDs[r1ShortKey{key.Customer, key.PlantSite, key.OrderStatus, key.PN}]; len(set) > 0 {
			ids := make([]string, 0, len(set))
			for id := range set {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			row.ShortPKIDCount = len(ids)
			row.ShortPKIDDetails = strings.Join(ids, ", ")
		}
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(a, b int) bool {
		ra, rb := rows[a], rows[b]
		if ra.Customer != rb.Customer {
			return ra.Customer < rb.Customer
		}
		if ra.PlantSite != rb.PlantSite {
			return ra.PlantSite < rb.PlantSite
		}
		if ra.OrderStatus != rb.OrderStatus {
			return ra.OrderStatus < rb.OrderStatus
		}
		if ra.PN != rb.PN {
			return ra.PN < rb.PN
		}
		return ra.UrgentFlag > rb.UrgentFlag // Y 在前
	})
	return rows
}
