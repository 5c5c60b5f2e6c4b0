package service

import (
	"sort"

	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/entity"
)

// orderDetail 订单与成品主数据连接后的明细行
type orderDetail struct {
	Order        entity.Order
	Product      entity.Product
	RemainingQty float64 // 经服务网点库存抵扣后的未交数量
	ASDeducted   float64 // 本单被抵扣的数量
}

// explodedRow BOM展开后的部件需求行
type explodedRow struct {
	DetailIdx   int // 指向 orderDetail 切片
	ChildPKID   string
	BOMQty      float64
	RequiredQty float64
}

// fieldServicePool 按PN汇总服务网点库存
func fieldServicePool(fs []entity.FieldServiceStock) map[string]float64 {
	pool := make(map[string]float64)
	for _, f := range fs {
		pool[f.PN] += f.Qty
	}
	return pool
}

// buildOrderDetails 订单内连接成品主数据，计算未交数量并做服务网点库存的先入先出抵扣。
// 抵扣规则：同一PN的订单按（下单日升序，同日加急优先）排队，逐单吃掉共享库存池，
// 任一单最多抵扣 min(本单未交量, 池余量)，组内抵扣合计不会超过池量。
func buildOrderDetails(orders []entity.Order, products []entity.Product, fs []entity.FieldServiceStock) ([]orderDetail, map[string]float64) {
	productByPN := make(map[string]entity.Product, len(products))
	for _, p := range products {
		productByPN[p.PN] = p
	}

	var details []orderDetail
	groupIdx := make(map[string][]int)
	for _, o := range orders {
		p, ok := productByPN[o.PN]
		if !ok {
			continue
		}
		details = append(details, orderDetail{
			Order:        o,
			Product:      p,
			RemainingQty: o.RemainingQty(),
		})
		groupIdx[o.PN] = append(groupIdx[o.PN], len(details)-1)
	}

	pool := fieldServicePool(fs)
	for pn, idxs := range groupIdx {
		total := pool[pn]
		if total <= 0 {
			continue
		}
		sort.SliceStable(idxs, func(a, b int) bool {
			oa, ob := details[idxs[a]].Order, details[idxs[b]].Order
			if !oa.OrderDate.Equal(ob.OrderDate) {
				return oa.OrderDate.Before(ob.OrderDate)
			}
			if oa.IsUrgent() != ob.IsUrgent() {
				return oa.IsUrgent()
			}
			return oa.OrderKey < ob.OrderKey
		})
		cumBefore := 0.0
		for _, i := range idxs {
			d := &details[i]
			avail := total - cumBefore
			if avail < 0 {
				avail = 0
			}
			deduct := d.RemainingQty
			if deduct > avail {
				deduct = avail
			}
			cumBefore += d.RemainingQty
			d.RemainingQty -= deduct
			d.ASDeducted = deduct
		}
	}

	return details, pool
}

// explodeBOM 订单明细内连接BOM，逐行计算部件需求量。
// 未交数量为0的订单仍保留展开行（需求为0），R1 的汇总统计需要这些行。
func explodeBOM(details []orderDetail, bom []entity.BOMLine) []explodedRow {
	bomByParent := make(map[string][]entity.BOMLine)
	for _, line := range bom {
		bomByParent[line.ParentPN] = append(bomByParent[line.ParentPN], line)
	}

	var exploded []explodedRow
	for i, d := range details {
		for _, line := range bomByParent[d.Product.PN] {
			exploded = append(exploded, explodedRow{
				DetailIdx:   i,
				ChildPKID:   line.ChildPKID,
				BOMQty:      line.BOMQty,
				RequiredQty: d.RemainingQty * line.BOMQty,
			})
		}
	}
	return exploded
}
