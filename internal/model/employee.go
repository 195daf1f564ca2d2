package model

import "time"

// Employee is gorm model for a member of staff managed by the back office
type Employee struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeCode string `gorm:"type:text;uniqueIndex;not null" json:"employee_code"`

	EditableEmployeeInfo `gorm:"embedded"`

	// Photo holds an object path in the attachment bucket
	Photo string `gorm:"type:text" json:"photo"`

	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}

// EditableEmployeeInfo holds the employee fields an admin may set or change
type EditableEmployeeInfo struct {
	FirstName     string     `gorm:"type:text" json:"first_name"`
	LastName      string     `gorm:"type:text" json:"last_name"`
	Email         *string    `json:"email"`
	Tel           *string    `json:"tel"`
	Designation   string     `gorm:"type:text" json:"designation"`
	Department    string     `gorm:"type:text" json:"department"`
	DateOfJoining *time.Time `gorm:"type:date" json:"date_of_joining"`
	Salary        string     `gorm:"type:text" json:"salary"`
}
