package service

import (
	"math"
	"sort"
	"strings"

	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/entity"
)

// buildR3 最大可生产数量：对每个有BOM的成品，在其归属基地逐部件计算
// floor(库存/单耗)，取最小值即瓶颈部件决定的可生产数量。单耗不大于0的
// 部件按可生产0处理，不做除法。includeBlocked 为 false 时省略可生产数量
// 为0的成品。
func buildR3(products []entity.Product, bom []entity.BOMLine, inv []entity.InventorySnapshot, includeBlocked bool) []entity.R3Row {
	bomByParent := make(map[string][]entity.BOMLine)
	for _, line := range bom {
		bomByParent[line.ParentPN] = append(bomByParent[line.ParentPN], line)
	}
	onHand := inventoryByKey(inv)

	var rows []entity.R3Row
	for _, p := range products {
		lines := bomByParent[p.PN]
		if len(lines) == 0 {
			continue
		}
		sorted := make([]entity.BOMLine, len(lines))
		copy(sorted, lines)
		sort.Slice(sorted, func(a, b int) bool { return sorted[a].ChildPKID < sorted[b].ChildPKID })

		minProducible := math.Inf(1)
		limiting := ""
		parts := make([]string, 0, len(sorted))
		for _, line := range sorted {
			stock := onHand[demandKey{line.ChildPKID, p.PlantSite}]
			producible := 0.0
			if line.BOMQty > 0 {
				producible = math.Floor(stock / line.BOMQty)
			}
			parts = append(parts, line.ChildPKID+": "+formatQty(stock)+"/"+formatQty(line.BOMQty))
			if producible < minProducible {
				minProducible = producible
				limiting = line.ChildPKID
			}
		}

		if minProducible <= 0 && !includeBlocked {
			continue
		}
		rows = append(rows, entity.R3Row{
			PN:            p.PN,
			PartName:      p.PartName,
			PlantSite:     p.PlantSite,
			ProducibleQty: minProducible,
			LimitingPKID:  limiting,
			Breakdown:     strings.Join(parts, "; "),
		})
	}

	sort.Slice(rows, func(a, b int) bool {
		if rows[a].ProducibleQty != rows[b].ProducibleQty {
			return rows[a].ProducibleQty > rows[b].ProducibleQty
		}
		return rows[a].PN < rows[b].PN
	})
	return rows
}
