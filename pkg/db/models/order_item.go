package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a line on an order. ProductName is free text joined to
// inventory by exact name at reconciliation time; there is deliberately no
// foreign key to inventory_items.
type OrderItem struct {
	ID          uint            `gorm:"column:id;primaryKey"`
	OrderID     uint            `gorm:"column:order_id;not null;index"`
	ProductName string          `gorm:"column:product_name;not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
