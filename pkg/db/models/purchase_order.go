package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder is an order placed to a supplier. Receiving is a bookkeeping
// flag only; it does not touch inventory.
type PurchaseOrder struct {
	ID          uint                `gorm:"column:id;primaryKey"`
	OrderNumber string              `gorm:"column:order_number;not null;uniqueIndex"`
	SupplierID  uint                `gorm:"column:supplier_id;not null"`
	Supplier    *Supplier           `gorm:"foreignKey:SupplierID"`
	TotalCost   decimal.Decimal     `gorm:"column:total_cost;type:numeric(10,2);not null;default:0"`
	Received    bool                `gorm:"column:received;not null;default:false"`
	Items       []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
