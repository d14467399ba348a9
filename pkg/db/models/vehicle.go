package models

import "time"

// Vehicle is a fleet vehicle that delivery jobs can be assigned to. Rows are
// never deleted through the API; a store-level delete cascades to the
// referencing delivery jobs.
type Vehicle struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Make      string    `gorm:"column:make;size:24;not null" json:"make"`
	Model     string    `gorm:"column:model;size:24;not null" json:"model"`
	Year      int       `gorm:"column:year;not null" json:"year"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
