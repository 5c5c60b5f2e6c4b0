package service

import (
	"testing"

	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/entity"
)

func TestBuildR3BottleneckComponent(t *testing.T) {
	products := []entity.Product{makeProduct("PN-A", "Cluster", "EV9", "HMC", "S1")}
	bom := []entity.BOMLine{
		makeBOMLine("PN-A", "C-100", 2),
		makeBOMLine("PN-A", "C-200", 1),
	}
	inv := []entity.InventorySnapshot{
		makeSnapshot("C-100", "S1", 7), // floor(7/2) = 3，瓶颈
		makeSnapshot("C-200", "S1", 100),
	}

	rows := buildR3(products, bom, inv, false)
	if len(rows) != 1 {
		t.Fatalf("R3 rows = %d, want 1", len(rows))
	}
	row := rows[0]
	if row.ProducibleQty != 3 {
		t.Errorf("producible = %v, want 3", row.ProducibleQty)
	}
	if row.LimitingPKID != "C-100" {
		t.Errorf("limiting = %q, want C-100", row.LimitingPKID)
	}
	if row.Breakdown != "C-100: 7/2; C-200: 100/1" {
		t.Errorf("breakdown = %q", row.Breakdown)
	}
}

// 单耗不大于0按可生产0处理，不能除0
func TestBuildR3NonPositiveBOMQty(t *testing.T) {
	products := []entity.Product{makeProduct("PN-A", "Cluster", "EV9", "HMC", "S1")}
	bom := []entity.BOMLine{
		makeBOMLine("PN-A", "C-100", 0),
		makeBOMLine("PN-A", "C-200", 1),
	}
	inv := []entity.InventorySnapshot{
		makeSnapshot("C-100", "S1", 50),
		makeSnapshot("C-200", "S1", 50),
	}

	if rows := buildR3(products, bom, inv, false); len(rows) != 0 {
		t.Errorf("blocked product must be omitted by default, got %+v", rows)
	}

	rows := buildR3(products, bom, inv, true)
	if len(rows) != 1 {
		t.Fatalf("R3 rows with includeBlocked = %d, want 1", len(rows))
	}
	if rows[0].ProducibleQty != 0 || rows[0].LimitingPKID != "C-100" {
		t.Errorf("blocked row = %+v", rows[0])
	}
}

func TestBuildR3UsesOwnSiteInventoryOnly(t *testing.T) {
	products := []entity.Product{makeProduct("PN-A", "Cluster", "EV9", "HMC", "S1")}
	bom := []entity.BOMLine{makeBOMLine("PN-A", "C-100", 1)}
	// 库存在别的基地，不计入本基地的可生产数量
	inv := []entity.InventorySnapshot{makeSnapshot("C-100", "S2", 99)}

	rows := buildR3(products, bom, inv, true)
	if len(rows) != 1 || rows[0].ProducibleQty != 0 {
		t.Fatalf("cross-site stock must not count: %+v", rows)
	}
}

func TestBuildR3SkipsProductsWithoutBOM(t *testing.T) {
	products := []entity.Product{
		makeProduct("PN-A", "Cluster", "EV9", "HMC", "S1"),
		makeProduct("PN-NOBOM", "Bracket", "", "HMC", "S1"),
	}
	bom := []entity.BOMLine{makeBOMLine("PN-A", "C-100", 1)}
	inv := []entity.InventorySnapshot{makeSnapshot("C-100", "S1", 5)}

	rows := buildR3(products, bom, inv, true)
	if len(rows) != 1 || rows[0].PN != "PN-A" {
		t.Fatalf("expected only PN-A, got %+v", rows)
	}
}

func TestBuildR3SortedByProducibleDesc(t *testing.T) {
	products := []entity.Product{
		makeProduct("PN-A", "Cluster", "", "HMC", "S1"),
		makeProduct("PN-B", "HUD", "", "HMC", "S1"),
		makeProduct("PN-C", "Radio", "", "HMC", "S1"),
	}
	bom := []entity.BOMLine{
		makeBOMLine("PN-A", "C-100", 1),
		makeBOMLine("PN-B", "C-200", 1),
		makeBOMLine("PN-C", "C-300", 1),
	}
	inv := []entity.InventorySnapshot{
		makeSnapshot("C-100", "S1", 5),
		makeSnapshot("C-200", "S1", 50),
		makeSnapshot("C-300", "S1", 50),
	}

	rows := buildR3(products, bom, inv, false)
	if len(rows) != 3 {
		t.Fatalf("R3 rows = %d, want 3", len(rows))
	}
	if rows[0].PN != "PN-B" || rows[1].PN != "PN-C" || rows[2].PN != "PN-A" {
		t.Errorf("sort order wrong: %s, %s, %s", rows[0].PN, rows[1].PN, rows[2].PN)
	}
}

func TestBuildR3FractionalBOMQty(t *testing.T) {
	products := []entity.Product{makeProduct("PN-A", "Cluster", "", "HMC", "S1")}
	bom := []entity.BOMLine{makeBOMLine("PN-A", "C-100", 2.5)}
	inv := []entity.InventorySnapshot{makeSnapshot("C-100", "S1", 12)}

	rows := buildR3(products, bom, inv, false)
	if len(rows) != 1 || rows[0].ProducibleQty != 4 {
		t.Fatalf("floor(12/2.5) should be 4, got %+v", rows)
	}
}
