package entity

import (
	"time"
)

// OrderStatus 订单状态
const (
	OrderStatusOpen      = "OPEN"
	OrderStatusUrgent    = "URGENT"
	OrderStatusClosed    = "CLOSED"
	OrderStatusCancelled = "CANCELLED"
)

// UrgentFlag 取值
const (
	UrgentYes = "Y"
	UrgentNo  = "N"
)

// Order 售后订单（AS_Order）
// 分析只读取 OPEN / URGENT 状态的订单
type Order struct {
	OrderKey     string    `json:"order_key" gorm:"primaryKey;size:64;not null"`
	PN           string    `json:"pn" gorm:"size:64;not null;index"`
	OrderQty     float64   `json:"order_qty" gorm:"type:decimal(12,4);not null"`
	DeliveredQty float64   `json:"delivered_qty" gorm:"type:decimal(12,4);default:0"`
	OrderDate    time.Time `json:"order_date" gorm:"not null;index"`
	UrgentFlag   string    `json:"urgent_flag" gorm:"size:1;not null;default:N"`
	Status       string    `json:"status" gorm:"column:order_status;size:20;not null;index"`
}

func (Order) TableName() string {
	return "as_order"
}

// IsUrgent 订单是否加急
func (o Order) IsUrgent() bool {
	return o.UrgentFlag == UrgentYes
}

// RemainingQty 未交数量，交付超量时按0处理
func (o Order) RemainingQty() float64 {
	if r := o.OrderQty - o.DeliveredQty; r > 0 {
		return r
	}
	return 0
}
