package service

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/entity"
)

// NoStockMark 代替品在任何基地都无库存时的占位串
const NoStockMark = "no stock"

// formatQty 数量格式化，整数不带小数位
func formatQty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// buildR2 部件级宽表：需求与库存分别按基地展开成列（全部基地，缺行补0），
// 只保留总缺料量大于0的部件，并为其挂接代替品及代替品各基地库存。
// 总库存从原始快照重新汇总而非求和需求连接行，零需求基地上的库存也要计入。
func buildR2(demand []componentDemand, inv []entity.InventorySnapshot, subs []entity.Substitute, sites []string) *entity.R2Report {
	type componentAgg struct {
		reqBySite     map[string]float64
		onHandBySite  map[string]float64
		totalRequired float64
		totalShortage float64
		isUrgent      bool
	}

	aggs := make(map[string]*componentAgg)
	var pkids []string
	for _, d := range demand {
		agg, ok := aggs[d.PKID]
		if !ok {
			agg = &componentAgg{
				reqBySite:    make(map[string]float64),
				onHandBySite: make(map[string]float64),
			}
			aggs[d.PKID] = agg
			pkids = append(pkids, d.PKID)
		}
		agg.reqBySite[d.PlantSite] += d.RequiredQty
		agg.onHandBySite[d.PlantSite] = d.OnHandQty
		agg.totalRequired += d.RequiredQty
		agg.totalShortage += d.ShortageQty
		if d.IsUrgent {
			agg.isUrgent = true
		}
	}
	sort.Strings(pkids)

	// 原始快照按部件汇总全基地库存，并补齐宽表中的零需求基地列
	totalOnHand := make(map[string]float64)
	for _, row := range inv {
		agg, ok := aggs[row.PKID]
		if !ok {
			continue
		}
		totalOnHand[row.PKID] += row.Qty
		if _, seen := agg.onHandBySite[row.PlantSite]; !seen {
			agg.onHandBySite[row.PlantSite] = row.Qty
		}
	}

	subsByChild := make(map[string][]entity.Substitute)
	for _, s := range subs {
		subsByChild[s.ChildPKID] = append(subsByChild[s.ChildPKID], s)
	}
	subInvRows := make(map[string][]entity.InventorySnapshot)
	for _, row := range inv {
		subInvRows[row.PKID] = append(subInvRows[row.PKID], row)
	}

	report := &entity.R2Report{Sites: sites}
	for _, pkid := range pkids {
		agg := aggs[pkid]
		if agg.totalShortage <= 0 {
			continue
		}

		row := entity.R2Row{
			IsUrgent:       agg.isUrgent,
			PKID:           pkid,
			TotalRequired:  agg.totalRequired,
			TotalOnHand:    totalOnHand[pkid],
			TotalShortage:  agg.totalShortage,
			RequiredBySite: make([]float64, len(sites)),
			OnHandBySite:   make([]float64, len(sites)),
		}
		var shortSites []string
		for i, site := range sites {
			req := agg.reqBySite[site]
			stock := agg.onHandBySite[site]
			row.RequiredBySite[i] = req
			row.OnHandBySite[i] = stock
			if req-stock > 0 {
				shortSites = append(shortSites, site)
			}
		}
		row.ShortageSites = strings.Join(shortSites, ", ")

		if registered := subsByChild[pkid]; len(registered) > 0 {
			var ids, descs, invStrs []string
			for _, s := range registered {
				ids = append(ids, s.SubstitutePKID)
				if s.Description != "" {
					descs = append(descs, s.Description)
				}
				invStrs = append(invStrs, substituteInventory(subInvRows[s.SubstitutePKID]))
			}
			row.SubstitutePKIDs = strings.Join(ids, ", ")
			row.SubstituteDesc = strings.Join(descs, ", ")
			row.SubstituteInvInfo = strings.Join(invStrs, " | ")
		}

		report.Rows = append(report.Rows, row)
	}
	return report
}

// substituteInventory 代替品的基地库存串 "SITE: qty, SITE: qty"，无库存行时返回占位串
func substituteInventory(rows []entity.InventorySnapshot) string {
	if len(rows) == 0 {
		return NoStockMark
	}
	sorted := make([]entity.InventorySnapshot, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].PlantSite < sorted[b].PlantSite })
	parts := make([]string, 0, len(sorted))
	for _, r := range sorted {
		parts = append(parts, r.PlantSite+": "+formatQty(r.Qty))
	}
	return strings.Join(parts, ", ")
}
