package model

import (
	"time"

	"github.com/google/uuid"
)

var (
	// RoleAdmin grants access to the whole back office
	RoleAdmin = "admin"
	// RoleStaff grants access to the self-service endpoints only
	RoleStaff = "staff"
)

// User is gorm model for back office and self-service portal accounts
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Username string    `gorm:"type:text;uniqueIndex;not null" json:"username"`
	Password string    `gorm:"type:text" json:"-"`
	Role     string    `gorm:"type:text;not null" json:"role"`

	Email *string `json:"email"`
	Tel   *string `json:"tel"`

	// EmployeeID links a staff account to its employee record, admins may have none
	EmployeeID *uint     `gorm:"index" json:"employee_id"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}

// UserResponse bundles a user with a freshly issued access token
type UserResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}
