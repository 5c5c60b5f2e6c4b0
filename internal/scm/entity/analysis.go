package entity

import (
	"time"
)

// AnalysisRunStatus 缺料分析运行状态
const (
	RunStatusRunning   = "RUNNING"
	RunStatusCompleted = "COMPLETED"
	RunStatusEmpty     = "EMPTY" // 前置条件不满足（无订单/无产品/无BOM），正常结束
	RunStatusFailed    = "FAILED"
)

// AnalysisRun 缺料分析运行记录
type AnalysisRun struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid"`
	RunCode        string     `json:"run_code" gorm:"size:50;not null;uniqueIndex"`
	Status         string     `json:"status" gorm:"size:20;not null;default:RUNNING"`
	Customers      string     `json:"customers" gorm:"type:text"` // 逗号分隔，空=全部
	Statuses       string     `json:"statuses" gorm:"type:text"`
	IncludeBlocked bool       `json:"include_blocked" gorm:"default:false"`
	SnapshotDate   *time.Time `json:"snapshot_date"`
	Message        string     `json:"message" gorm:"type:text"`
	R1Rows         int        `json:"r1_rows" gorm:"default:0"`
	R2Rows         int        `json:"r2_rows" gorm:"default:0"`
	R3Rows         int        `json:"r3_rows" gorm:"default:0"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
	CreatedBy      string     `json:"created_by" gorm:"size:64"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (AnalysisRun) TableName() string {
	return "shortage_analysis_runs"
}

// R1Row 订单/成品级汇总行
// 分组键为 (加急标记, 客户, 生产基地, 订单状态, 车型, 品名, PN)
type R1Row struct {
	UrgentFlag        string  `json:"urgent_flag"`
	Customer          string  `json:"customer"`
	PlantSite         string  `json:"plant_site"`
	OrderStatus       string  `json:"order_status"`
	CarType           string  `json:"car_type"`
	PartName          string  `json:"part_name"`
	PN                string  `json:"pn"`
	OrderCount        int     `json:"order_count"`
	TotalOrderQty     float64 `json:"total_order_qty"`
	TotalDeliveredQty float64 `json:"total_delivered_qty"`
	FieldServiceQty   float64 `json:"field_service_qty"` // 该PN的服务网点库存合计
	TotalRemainingQty float64 `json:"total_remaining_qty"`
	ShortPKIDCount    int     `json:"short_pkid_count"`
	ShortPKIDDetails  string  `json:"short_pkid_details"` // 缺料部件清单，逗号分隔、升序
}

// R2Row 部件级宽表行，RequiredBySite/OnHandBySite 与 R2Report.Sites 一一对应
type R2Row struct {
	IsUrgent          bool      `json:"is_urgent"`
	PKID              string    `json:"pkid"`
	ShortageSites     string    `json:"shortage_sites"`
	TotalRequired     float64   `json:"total_required"`
	TotalOnHand       float64   `json:"total_on_hand"`
	TotalShortage     float64   `json:"total_shortage"`
	RequiredBySite    []float64 `json:"required_by_site"`
	OnHandBySite      []float64 `json:"on_hand_by_site"`
	SubstitutePKIDs   string    `json:"substitute_pkids"`
	SubstituteDesc    string    `json:"substitute_desc"`
	SubstituteInvInfo string    `json:"substitute_inv_info"` // 代替品各基地库存，竖线分隔
}

// R2Report 部件级宽表；Sites 固定了各基地列的顺序，是导出列序契约的一部分
type R2Report struct {
	Sites []string `json:"sites"`
	Rows  []R2Row  `json:"rows"`
}

// Headers 导出列头，顺序即契约
func (r *R2Report) Headers() []string {
	h := []string{"IS_URGENT", "PKID", "SHORTAGE_SITES", "TOTAL_REQUIRED", "TOTAL_ON_HAND", "TOTAL_SHORTAGE"}
	for _, s := range r.Sites {
		h = append(h, s+" REQUIRED")
	}
	for _, s := range r.Sites {
		h = append(h, s+" ON_HAND")
	}
	return append(h, "SUBSTITUTE_PKIDS", "SUBSTITUTE_DESC", "SUBSTITUTE_INVENTORY")
}

// R3Row 最大可生产数量行
type R3Row struct {
	PN            string  `json:"pn"`
	PartName      string  `json:"part_name"`
	PlantSite     string  `json:"plant_site"`
	ProducibleQty float64 `json:"producible_qty"`
	LimitingPKID  string  `json:"limiting_pkid"`
	Breakdown     string  `json:"breakdown"` // 各部件 "PKID: 库存/单耗" 明细
}

// AnalysisResult 一次缺料分析的全部输出
// Message 非空表示因前置条件不满足而提前结束；R3 不依赖订单展开，可单独产出
type AnalysisResult struct {
	SnapshotDate time.Time `json:"snapshot_date"`
	Message      string    `json:"message,omitempty"`
	R1           []R1Row   `json:"r1"`
	R2           *R2Report `json:"r2"`
	R3           []R3Row   `json:"r3"`
}
