package model

import "time"

// JobCategory is an administrator-defined grouping that applications are filed under
type JobCategory struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryName string    `gorm:"type:text;not null" json:"category_name"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}
