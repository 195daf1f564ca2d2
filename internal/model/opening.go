package model

import (
	"time"

	"github.com/lib/pq"
)

// JobOpening is gorm model for a published job opening
type JobOpening struct {
	ID uint `gorm:"primaryKey;autoIncrement;->" json:"id"`

	EditableOpeningInfo `gorm:"embedded"`

	JobCategoryID uint        `gorm:"index" json:"job_category_id"`
	JobCategory   JobCategory `gorm:"foreignKey:JobCategoryID;references:ID" json:"-"`

	PostedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"posted_at"`
}

// EditableOpeningInfo holds the opening fields an admin may set or change
type EditableOpeningInfo struct {
	Title        string         `gorm:"type:text" json:"title"`
	Desc         string         `gorm:"type:text" json:"desc"`
	Requirements string         `gorm:"type:text" json:"requirements"`
	Location     string         `gorm:"type:text" json:"location"`
	Type         string         `gorm:"type:text" json:"type"`
	Salary       string         `gorm:"type:text" json:"salary"`
	Tags         pq.StringArray `gorm:"type:text[]" json:"tags"`
	Active       *bool          `gorm:"default:true" json:"active"`
	Expiring     *time.Time     `gorm:"type:timestamp" json:"expiring,omitempty"`
}
