package models

import "time"

// Supplier tracks where inventory is sourced from.
type Supplier struct {
	ID           uint      `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name;not null;uniqueIndex"`
	ContactEmail string    `gorm:"column:contact_email"`
	Phone        string    `gorm:"column:phone"`
	Address      string    `gorm:"column:address"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
