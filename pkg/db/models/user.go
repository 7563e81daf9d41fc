package models

import "time"

// User identifies the employee acting on inventory. Accounts are provisioned
// by the fronting identity service; this table only backs audit attribution.
type User struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
