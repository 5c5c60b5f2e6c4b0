package service

import (
	"testing"

	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/entity"
)

func TestRemainingQtyClampedAtZero(t *testing.T) {
	over := makeOrder("SO-001", "PN-A", 10, 15, 1, false, entity.OrderStatusOpen)
	if got := over.RemainingQty(); got != 0 {
		t.Errorf("over-delivered remaining = %v, want 0", got)
	}
	normal := makeOrder("SO-002", "PN-A", 10, 4, 1, false, entity.OrderStatusOpen)
	if got := normal.RemainingQty(); got != 6 {
		t.Errorf("remaining = %v, want 6", got)
	}
}

func TestBuildOrderDetailsSkipsUnknownProducts(t *testing.T) {
	orders := []entity.Order{
		makeOrder("SO-001", "PN-A", 10, 0, 1, false, entity.OrderStatusOpen),
		makeOrder("SO-002", "PN-GHOST", 10, 0, 1, false, entity.OrderStatusOpen),
	}
	products := []entity.Product{makeProduct("PN-A", "Cluster", "", "HMC", "S1")}

	details, _ := buildOrderDetails(orders, products, nil)
	if len(details) != 1 {
		t.Fatalf("details = %d, want 1", len(details))
	}
	if details[0].Order.OrderKey != "SO-001" {
		t.Errorf("kept order = %s, want SO-001", details[0].Order.OrderKey)
	}
}

// 先到先得：日期早的订单先吃库存池，后面的订单只能分到余量
func TestFieldServiceDeductionFIFO(t *testing.T) {
	orders := []entity.Order{
		makeOrder("SO-002", "PN-A", 50, 0, 2, false, entity.OrderStatusOpen),
		makeOrder("SO-001", "PN-A", 20, 0, 1, false, entity.OrderStatusOpen),
	}
	products := []entity.Product{makeProduct("PN-A", "Cluster", "", "HMC", "S1")}
	fs := []entity.FieldServiceStock{{PN: "PN-A", Qty: 30}}

	details, pool := buildOrderDetails(orders, products, fs)
	if pool["PN-A"] != 30 {
		t.Fatalf("pool = %v, want 30", pool["PN-A"])
	}

	byKey := make(map[string]orderDetail, len(details))
	for _, d := range details {
		byKey[d.Order.OrderKey] = d
	}
	if d := byKey["SO-001"]; d.ASDeducted != 20 || d.RemainingQty != 0 {
		t.Errorf("SO-001 deducted/remaining = %v/%v, want 20/0", d.ASDeducted, d.RemainingQty)
	}
	if d := byKey["SO-002"]; d.ASDeducted != 10 || d.RemainingQty != 40 {
		t.Errorf("SO-002 deducted/remaining = %v/%v, want 10/40", d.ASDeducted, d.RemainingQty)
	}
}

func TestFieldServiceDeductionUrgentFirstOnSameDate(t *testing.T) {
	orders := []entity.Order{
		makeOrder("SO-001", "PN-A", 20, 0, 1, false, entity.OrderStatusOpen),
		makeOrder("SO-002", "PN-A", 20, 0, 1, true, entity.OrderStatusUrgent),
	}
	products := []entity.Product{makeProduct("PN-A", "Cluster", "", "HMC", "S1")}
	fs := []entity.FieldServiceStock{{PN: "PN-A", Qty: 25}}

	details, _ := buildOrderDetails(orders, products, fs)
	byKey := make(map[string]orderDetail, len(details))
	for _, d := range details {
		byKey[d.Order.OrderKey] = d
	}
	if d := byKey["SO-002"]; d.ASDeducted != 20 {
		t.Errorf("urgent order deducted = %v, want 20", d.ASDeducted)
	}
	if d := byKey["SO-001"]; d.ASDeducted != 5 {
		t.Errorf("normal order deducted = %v, want 5", d.ASDeducted)
	}
}

// 组内抵扣合计不能超过池量，即便未交总量远大于库存
func TestFieldServiceDeductionConservation(t *testing.T) {
	orders := []entity.Order{
		makeOrder("SO-001", "PN-A", 100, 0, 1, false, entity.OrderStatusOpen),
		makeOrder("SO-002", "PN-A", 100, 0, 2, false, entity.OrderStatusOpen),
		makeOrder("SO-003", "PN-A", 100, 0, 3, false, entity.OrderStatusOpen),
	}
	products := []entity.Product{makeProduct("PN-A", "Cluster", "", "HMC", "S1")}
	fs := []entity.FieldServiceStock{
		{PN: "PN-A", Location: "Seoul", Qty: 80},
		{PN: "PN-A", Location: "Busan", Qty: 70},
	}

	details, _ := buildOrderDetails(orders, products, fs)
	var deducted, remaining float64
	for _, d := range details {
		deducted += d.ASDeducted
		remaining += d.RemainingQty
		if d.RemainingQty < 0 {
			t.Errorf("order %s remaining went negative: %v", d.Order.OrderKey, d.RemainingQty)
		}
	}
	if deducted != 150 {
		t.Errorf("total deducted = %v, want 150 (the whole pool)", deducted)
	}
	if remaining != 150 {
		t.Errorf("total remaining = %v, want 150", remaining)
	}
}

func TestFieldServicePoolSharedPerPN(t *testing.T) {
	orders := []entity.Order{
		makeOrder("SO-001", "PN-A", 10, 0, 1, false, entity.OrderStatusOpen),
		makeOrder("SO-002", "PN-B", 10, 0, 1, false, entity.OrderStatusOpen),
	}
	products := []entity.Product{
		makeProduct("PN-A", "Cluster", "", "HMC", "S1"),
		makeProduct("PN-B", "HUD", "", "HMC", "S1"),
	}
	fs := []entity.FieldServiceStock{{PN: "PN-A", Qty: 100}}

	details, _ := buildOrderDetails(orders, products, fs)
	byKey := make(map[string]orderDetail, len(details))
	for _, d := range details {
		byKey[d.Order.OrderKey] = d
	}
	if d := byKey["SO-002"]; d.ASDeducted != 0 || d.RemainingQty != 10 {
		t.Errorf("PN-B must not touch PN-A's pool: deducted/remaining = %v/%v", d.ASDeducted, d.RemainingQty)
	}
}

func TestExplodeBOMKeepsZeroRemainingRows(t *testing.T) {
	details := []orderDetail{
		{
			Order:        makeOrder("SO-001", "PN-A", 10, 10, 1, false, entity.OrderStatusOpen),
			Product:      makeProduct("PN-A", "Cluster", "", "HMC", "S1"),
			RemainingQty: 0,
		},
	}
	bom := []entity.BOMLine{makeBOMLine("PN-A", "C-100", 2)}

	exploded := explodeBOM(details, bom)
	if len(exploded) != 1 {
		t.Fatalf("exploded rows = %d, want 1", len(exploded))
	}
	if exploded[0].RequiredQty != 0 {
		t.Errorf("required = %v, want 0", exploded[0].RequiredQty)
	}
}

func TestExplodeBOMMultipliesRemaining(t *testing.T) {
	details := []orderDetail{
		{
			Order:        makeOrder("SO-001", "PN-A", 100, 20, 1, false, entity.OrderStatusOpen),
			Product:      makeProduct("PN-A", "Cluster", "", "HMC", "S1"),
			RemainingQty: 80,
		},
	}
	bom := []entity.BOMLine{
		makeBOMLine("PN-A", "C-100", 2),
		makeBOMLine("PN-A", "C-200", 0.5),
		makeBOMLine("PN-OTHER", "C-300", 1),
	}

	exploded := explodeBOM(details, bom)
	if len(exploded) != 2 {
		t.Fatalf("exploded rows = %d, want 2", len(exploded))
	}
	want := map[string]float64{"C-100": 160, "C-200": 40}
	for _, row := range exploded {
		if row.RequiredQty != want[row.ChildPKID] {
			t.Errorf("%s required = %v, want %v", row.ChildPKID, row.RequiredQty, want[row.ChildPKID])
		}
	}
}
