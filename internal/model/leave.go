package model

import (
	"time"

	"github.com/google/uuid"
)

var (
	// LeaveStatusPending indicates the request is waiting for an admin decision
	LeaveStatusPending = "pending"
	// LeaveStatusApproved indicates the request has been approved
	LeaveStatusApproved = "approved"
	// LeaveStatusRejected indicates the request has been rejected
	LeaveStatusRejected = "rejected"
)

// LeaveTypes lists the accepted values for LeaveRequest.Type
var LeaveTypes = []string{"casual", "sick", "earned", "unpaid"}

// LeaveRequest is gorm model for a staff leave request and its decision
type LeaveRequest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	EmployeeID uint     `gorm:"not null;index" json:"employee_id"`
	Employee   Employee `gorm:"foreignKey:EmployeeID;references:ID" json:"-"`

	FromDate string `gorm:"type:text;not null" json:"from_date"`
	ToDate   string `gorm:"type:text;not null" json:"to_date"`
	Type     string `gorm:"type:text;not null" json:"type"`
	Reason   string `gorm:"type:text" json:"reason"`

	Status    string     `gorm:"type:text" json:"status"`
	DecidedBy *uuid.UUID `gorm:"type:uuid" json:"decided_by,omitempty"`
	DecidedAt *time.Time `gorm:"type:timestamp" json:"decided_at,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}
