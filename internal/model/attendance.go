package model

import "time"

// Attendance is gorm model for one clock-in/clock-out interval of an employee
type Attendance struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	EmployeeID uint     `gorm:"not null;index" json:"employee_id"`
	Employee   Employee `gorm:"foreignKey:EmployeeID;references:ID" json:"-"`

	Date     string     `gorm:"type:text;not null" json:"date"`
	ClockIn  time.Time  `gorm:"type:timestamp;not null" json:"clock_in"`
	ClockOut *time.Time `gorm:"type:timestamp" json:"clock_out,omitempty"`

	// WorkedMinutes is derived at clock-out, zero while the interval is open
	WorkedMinutes int `json:"worked_minutes"`
}
