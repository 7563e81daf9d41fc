package models

import (
	"time"

	"github.com/stockroomhq/stockroom-backend/pkg/enums"
)

// Order is an inbound stock order. Completing a pending order applies its
// line items to inventory.
type Order struct {
	ID               uint              `gorm:"column:id;primaryKey"`
	OrderNumber      string            `gorm:"column:order_number;not null;uniqueIndex"`
	Status           enums.OrderStatus `gorm:"column:status;not null;default:'PENDING'"`
	SupplierID       *uint             `gorm:"column:supplier_id"`
	Supplier         *Supplier         `gorm:"foreignKey:SupplierID"`
	ExpectedDelivery *time.Time        `gorm:"column:expected_delivery"`
	Items            []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
