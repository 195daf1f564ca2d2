package model

import "time"

var (
	// PayrollStatusDraft indicates the payroll row has not been paid out yet
	PayrollStatusDraft = "draft"
	// PayrollStatusPaid indicates the payroll row has been paid out
	PayrollStatusPaid = "paid"
)

// Payroll is gorm model for one employee's pay for one month
type Payroll struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// One row per employee per month
	EmployeeID uint     `gorm:"not null;uniqueIndex:idx_payroll_employee_month" json:"employee_id"`
	Employee   Employee `gorm:"foreignKey:EmployeeID;references:ID" json:"-"`
	Month      string   `gorm:"type:text;not null;uniqueIndex:idx_payroll_employee_month" json:"month"`

	Basic      float64 `json:"basic"`
	Allowances float64 `json:"allowances"`
	Deductions float64 `json:"deductions"`
	// Net is always recomputed server side as basic + allowances - deductions
	Net float64 `json:"net"`

	Status string     `gorm:"type:text" json:"status"`
	PaidAt *time.Time `gorm:"type:timestamp" json:"paid_at,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}
