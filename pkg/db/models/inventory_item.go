package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockroomhq/stockroom-backend/pkg/enums"
)

// InventoryItem is a stocked product. Status is derived from quantity and
// threshold on every save and must never be written directly by callers.
type InventoryItem struct {
	ID             uint              `gorm:"column:id;primaryKey"`
	Name           string            `gorm:"column:name;not null;uniqueIndex"`
	Quantity       int               `gorm:"column:quantity;not null;default:0"`
	Threshold      int               `gorm:"column:threshold;not null;default:0"`
	Status         enums.StockStatus `gorm:"column:status;not null;default:0"`
	AlertTriggered bool              `gorm:"column:alert_triggered;not null;default:false"`
	Price          decimal.Decimal   `gorm:"column:price;type:numeric(10,2);not null;default:0"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
