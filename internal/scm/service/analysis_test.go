package service

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/entity"
)

func testDate(day int) time.Time {
	return time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC)
}

func makeOrder(key, pn string, qty, delivered float64, day int, urgent bool, status string) entity.Order {
	flag := entity.UrgentNo
	if urgent {
		flag = entity.UrgentYes
	}
	return entity.Order{
		OrderKey:     key,
		PN:           pn,
		OrderQty:     qty,
		DeliveredQty: delivered,
		OrderDate:    testDate(day),
		UrgentFlag:   flag,
		Status:       status,
	}
}

func makeProduct(pn, name, car, customer, site string) entity.Product {
	return entity.Product{PN: pn, PartName: name, CarType: car, Customer: customer, PlantSite: site}
}

func makeBOMLine(parent, child string, qty float64) entity.BOMLine {
	return entity.BOMLine{ParentPN: parent, ChildPKID: child, BOMQty: qty}
}

func makeSnapshot(pkid, site string, qty float64) entity.InventorySnapshot {
	return entity.InventorySnapshot{PKID: pkid, PlantSite: site, SnapshotDate: testDate(20), Qty: qty}
}

// baseDataset 覆盖完整链路的小数据集：两个客户、两个基地、一个共享部件
func baseDataset() Dataset {
	return Dataset{
		Orders: []entity.Order{
			makeOrder("SO-001", "PN-A", 100, 20, 1, false, entity.OrderStatusOpen),
			makeOrder("SO-002", "PN-B", 50, 0, 2, true, entity.OrderStatusUrgent),
			makeOrder("SO-003", "PN-A", 30, 30, 3, false, entity.OrderStatusOpen),
			makeOrder("SO-004", "PN-A", 10, 0, 4, false, entity.OrderStatusClosed),
		},
		Products: []entity.Product{
			makeProduct("PN-A", "Cluster Assy", "EV9", "HMC", "S1"),
			makeProduct("PN-B", "HUD Assy", "G90", "KIA", "S2"),
		},
		BOM: []entity.BOMLine{
			makeBOMLine("PN-A", "C-100", 2),
			makeBOMLine("PN-A", "C-200", 1),
			makeBOMLine("PN-B", "C-100", 3),
		},
		Inventory: []entity.InventorySnapshot{
			makeSnapshot("C-100", "S1", 60),
			makeSnapshot("C-200", "S1", 500),
			makeSnapshot("C-100", "S2", 10),
		},
		SnapshotDate: testDate(20),
		Sites:        []string{"S1", "S2"},
	}
}

func TestAnalyzeRequiresStatusFilter(t *testing.T) {
	_, err := Analyze(baseDataset(), Filters{}, Options{})
	if !errors.Is(err, ErrNoStatusFilter) {
		t.Fatalf("expected ErrNoStatusFilter, got %v", err)
	}
}

func TestAnalyzeFullRun(t *testing.T) {
	result, err := Analyze(baseDataset(), Filters{Statuses: []string{entity.OrderStatusOpen, entity.OrderStatusUrgent}}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Message != "" {
		t.Fatalf("expected no message, got %q", result.Message)
	}
	if !result.SnapshotDate.Equal(testDate(20)) {
		t.Errorf("snapshot date = %v, want %v", result.SnapshotDate, testDate(20))
	}

	// SO-004 filtered out by status; SO-001 and SO-003 share one group
	if len(result.R1) != 2 {
		t.Fatalf("R1 rows = %d, want 2", len(result.R1))
	}

	// PN-A: remaining 80, C-100 required 160 at S1 vs stock 60 -> short 100
	// PN-B: remaining 50, C-100 required 150 at S2 vs stock 10 -> short 140
	if result.R2 == nil || len(result.R2.Rows) != 1 {
		t.Fatalf("expected a single R2 row, got %+v", result.R2)
	}
	row := result.R2.Rows[0]
	if row.PKID != "C-100" {
		t.Errorf("R2 PKID = %q, want C-100", row.PKID)
	}
	if row.TotalShortage != 240 {
		t.Errorf("total shortage = %v, want 240", row.TotalShortage)
	}
	if !row.IsUrgent {
		t.Error("C-100 feeds an urgent order, expected urgent mark")
	}
}

func TestAnalyzeEmptyMessages(t *testing.T) {
	statuses := []string{entity.OrderStatusOpen, entity.OrderStatusUrgent}

	ds := baseDataset()
	ds.Orders = nil
	result, err := Analyze(ds, Filters{Statuses: statuses}, Options{})
	if err != nil || result.Message != MsgNoOrders {
		t.Fatalf("no orders: message = %q, err = %v", result.Message, err)
	}

	ds = baseDataset()
	result, err = Analyze(ds, Filters{Customers: []string{"NOBODY"}, Statuses: statuses}, Options{})
	if err != nil || result.Message != MsgNoProducts {
		t.Fatalf("no products: message = %q, err = %v", result.Message, err)
	}

	ds = baseDataset()
	result, err = Analyze(ds, Filters{Customers: []string{"KIA"}, Statuses: []string{entity.OrderStatusOpen}}, Options{})
	if err != nil || result.Message != MsgNoOrderMatches {
		t.Fatalf("no matches: message = %q, err = %v", result.Message, err)
	}

	ds = baseDataset()
	ds.BOM = nil
	result, err = Analyze(ds, Filters{Statuses: statuses}, Options{})
	if err != nil || result.Message != MsgNoBOM {
		t.Fatalf("no bom: message = %q, err = %v", result.Message, err)
	}
}

// R3 只依赖产品/BOM/库存，订单侧前置条件不满足时也要产出
func TestAnalyzeR3SurvivesEarlyTermination(t *testing.T) {
	ds := baseDataset()
	ds.Orders = nil
	result, err := Analyze(ds, Filters{Statuses: []string{entity.OrderStatusOpen}}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Message != MsgNoOrders {
		t.Fatalf("message = %q, want %q", result.Message, MsgNoOrders)
	}
	if len(result.R3) == 0 {
		t.Fatal("expected R3 rows despite missing orders")
	}
}

func TestAnalyzeNormalizesKeys(t *testing.T) {
	ds := baseDataset()
	ds.Orders = []entity.Order{
		makeOrder("SO-001", "  pn-a ", 100, 20, 1, false, " open "),
	}
	result, err := Analyze(ds, Filters{Customers: []string{"hmc "}, Statuses: []string{"open"}}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Message != "" {
		t.Fatalf("keys should match after normalization, got message %q", result.Message)
	}
	if len(result.R1) != 1 || result.R1[0].PN != "PN-A" {
		t.Fatalf("unexpected R1: %+v", result.R1)
	}
}

func TestAnalyzeEmptyCustomerFilterMeansAll(t *testing.T) {
	statuses := []string{entity.OrderStatusOpen, entity.OrderStatusUrgent}
	all, err := Analyze(baseDataset(), Filters{Statuses: statuses}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	both, err := Analyze(baseDataset(), Filters{Customers: []string{"HMC", "KIA"}, Statuses: statuses}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(all, both) {
		t.Error("empty customer filter should behave like selecting every customer")
	}
}

// 纯函数：同一快照重复分析结果必须完全一致
func TestAnalyzeDeterministic(t *testing.T) {
	filters := Filters{Statuses: []string{entity.OrderStatusOpen, entity.OrderStatusUrgent}}
	first, err := Analyze(baseDataset(), filters, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Analyze(baseDataset(), filters, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated analysis over the same dataset diverged")
	}
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	ds := baseDataset()
	ds.Orders[0].PN = " pn-a "
	if _, err := Analyze(ds, Filters{Statuses: []string{entity.OrderStatusOpen}}, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Orders[0].PN != " pn-a " {
		t.Errorf("input dataset mutated: PN = %q", ds.Orders[0].PN)
	}
}

func TestNormalizeSitesFallback(t *testing.T) {
	products := []entity.Product{makeProduct("PN-A", "", "", "HMC", "S2")}
	inventory := []entity.InventorySnapshot{makeSnapshot("C-100", "S1", 1)}

	got := normalizeSites(nil, products, inventory)
	want := []string{"S1", "S2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fallback sites = %v, want %v", got, want)
	}

	got = normalizeSites([]string{"s3", "S1", " s1 "}, products, inventory)
	want = []string{"S1", "S3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("explicit sites = %v, want %v", got, want)
	}
}
