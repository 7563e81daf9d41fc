package models

import (
	"time"

	"github.com/stockroomhq/stockroom-backend/pkg/enums"
)

// ChangelogEntry records an immutable quantity change on an inventory item,
// including the status the item landed on and the user who made the change.
type ChangelogEntry struct {
	ID        uint              `gorm:"column:id;primaryKey"`
	ItemID    uint              `gorm:"column:item_id;not null;index"`
	Item      InventoryItem     `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	OldValue  int               `gorm:"column:old_value;not null"`
	NewValue  int               `gorm:"column:new_value;not null"`
	Status    enums.StockStatus `gorm:"column:status;not null"`
	UserID    *uint             `gorm:"column:user_id"`
	User      *User             `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
}
