package service

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/entity"
)

// ErrNoStatusFilter 订单状态过滤项不允许为空
var ErrNoStatusFilter = errors.New("at least one order status is required")

// 前置条件不满足时的提示信息，属正常结束而非故障
const (
	MsgNoOrders       = "no orders found matching the status criteria"
	MsgNoProducts     = "no products found matching the customer criteria"
	MsgNoOrderMatches = "no matching orders found for the selected customers"
	MsgNoBOM          = "no BOM data found for the selected products"
)

// Filters 分析过滤条件；Customers 为空表示全部客户
type Filters struct {
	Customers []string `json:"customers"`
	Statuses  []string `json:"statuses"`
}

// Options 分析选项
type Options struct {
	// IncludeBlocked 为 true 时 R3 包含可生产数量为0的成品
	IncludeBlocked bool `json:"include_blocked"`
}

// Dataset 一次分析所需的全量快照，加载后视为不可变
type Dataset struct {
	Orders       []entity.Order
	Products     []entity.Product
	BOM          []entity.BOMLine
	Inventory    []entity.InventorySnapshot
	SnapshotDate time.Time
	Substitutes  []entity.Substitute
	FieldService []entity.FieldServiceStock
	Sites        []string
}

// Analyze 缺料分析核心。纯函数：对传入快照做连接与聚合，产出 R1/R2/R3。
// 前置条件不满足（无订单/无产品/无BOM）时在结果的 Message 中给出原因；
// R3 只依赖产品/BOM/库存，即使 R1/R2 提前结束也照常产出。
func Analyze(ds Dataset, filters Filters, opts Options) (*entity.AnalysisResult, error) {
	if len(filters.Statuses) == 0 {
		return nil, ErrNoStatusFilter
	}

	norm := normalizeDataset(ds)
	orders := filterOrders(norm.Orders, filters.Statuses)
	products := filterProducts(norm.Products, filters.Customers)

	result := &entity.AnalysisResult{SnapshotDate: norm.SnapshotDate}
	result.R3 = buildR3(products, norm.BOM, norm.Inventory, opts.IncludeBlocked)

	if len(orders) == 0 {
		result.Message = MsgNoOrders
		return result, nil
	}
	if len(products) == 0 {
		result.Message = MsgNoProducts
		return result, nil
	}

	details, fsTotals := buildOrderDetails(orders, products, norm.FieldService)
	if len(details) == 0 {
		result.Message = MsgNoOrderMatches
		return result, nil
	}

	exploded := explodeBOM(details, norm.BOM)
	if len(exploded) == 0 {
		result.Message = MsgNoBOM
		return result, nil
	}

	demand := netDemand(exploded, details, norm.Inventory)
	result.R1 = buildR1(details, exploded, demand, fsTotals)
	result.R2 = buildR2(demand, norm.Inventory, norm.Substitutes, norm.Sites)
	return result, nil
}

// normalizeKey 连接键统一去空白并转大写，吸收上游数据的大小写漂移
func normalizeKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// normalizeDataset 返回键已规范化的副本，原快照不被修改
func normalizeDataset(ds Dataset) Dataset {
	out := Dataset{SnapshotDate: ds.SnapshotDate}

	out.Orders = make([]entity.Order, len(ds.Orders))
	for i, o := range ds.Orders {
		o.OrderKey = strings.TrimSpace(o.OrderKey)
		o.PN = normalizeKey(o.PN)
		o.Status = normalizeKey(o.Status)
		o.UrgentFlag = normalizeKey(o.UrgentFlag)
		out.Orders[i] = o
	}

	out.Products = make([]entity.Product, len(ds.Products))
	for i, p := range ds.Products {
		p.PN = normalizeKey(p.PN)
		p.Customer = normalizeKey(p.Customer)
		p.PlantSite = normalizeKey(p.PlantSite)
		p.PartName = strings.TrimSpace(p.PartName)
		p.CarType = strings.TrimSpace(p.CarType)
		out.Products[i] = p
	}

	out.BOM = make([]entity.BOMLine, len(ds.BOM))
	for i, b := range ds.BOM {
		b.ParentPN = normalizeKey(b.ParentPN)
		b.ChildPKID = normalizeKey(b.ChildPKID)
		out.BOM[i] = b
	}

	out.Inventory = make([]entity.InventorySnapshot, len(ds.Inventory))
	for i, inv := range ds.Inventory {
		inv.PKID = normalizeKey(inv.PKID)
		inv.PlantSite = normalizeKey(inv.PlantSite)
		out.Inventory[i] = inv
	}

	out.Substitutes = make([]entity.Substitute, len(ds.Substitutes))
	for i, s := range ds.Substitutes {
		s.ChildPKID = normalizeKey(s.ChildPKID)
		s.SubstitutePKID = normalizeKey(s.SubstitutePKID)
		out.Substitutes[i] = s
	}

	out.FieldService = make([]entity.FieldServiceStock, len(ds.FieldService))
	for i, f := range ds.FieldService {
		f.PN = normalizeKey(f.PN)
		out.FieldService[i] = f
	}

	out.Sites = normalizeSites(ds.Sites, out.Products, out.Inventory)
	return out
}

// normalizeSites 基地列表去重排序；主数据缺失时退化为产品与库存中出现过的基地并集
func normalizeSites(sites []string, products []entity.Product, inventory []entity.InventorySnapshot) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(s string) {
		s = normalizeKey(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	for _, s := range sites {
		add(s)
	}
	if len(out) == 0 {
		for _, p := range products {
			add(p.PlantSite)
		}
		for _, inv := range inventory {
			add(inv.PlantSite)
		}
	}
	sort.Strings(out)
	return out
}

func filterOrders(orders []entity.Order, statuses []string) []entity.Order {
	want := make(map[string]struct{}, len(statuses))
	for _, s := range statuses {
		want[normalizeKey(s)] = struct{}{}
	}
	var out []entity.Order
	for _, o := range orders {
		if _, ok := want[o.Status]; ok {
			out = append(out, o)
		}
	}
	return out
}

func filterProducts(products []entity.Product, customers []string) []entity.Product {
	if len(customers) == 0 {
		return products
	}
	want := make(map[string]struct{}, len(customers))
	for _, c := range customers {
		want[normalizeKey(c)] = struct{}{}
	}
	var out []entity.Product
	for _, p := range products {
		if _, ok := want[p.Customer]; ok {
			out = append(out, p)
		}
	}
	return out
}
