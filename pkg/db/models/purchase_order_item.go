package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItem is a line on a purchase order.
type PurchaseOrderItem struct {
	ID              uint            `gorm:"column:id;primaryKey"`
	PurchaseOrderID uint            `gorm:"column:purchase_order_id;not null;index"`
	ProductName     string          `gorm:"column:product_name;not null"`
	Quantity        int             `gorm:"column:quantity;not null"`
	UnitPrice       decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null;default:0"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}
