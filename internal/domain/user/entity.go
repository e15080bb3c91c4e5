// internal/domain/user/entity.go
package user

import (
	"time"

	"gorm.io/gorm"
)

// Role is the access level of a terminal account
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleCashier Role = "CASHIER"
)

// Valid reports whether the role is one the terminal knows
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCashier
}

// User represents a cashier or admin account on the terminal
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;not null;size:50" json:"username"`
	PasswordHash string         `gorm:"not null;size:255" json:"-"`
	FullName     string         `gorm:"size:100" json:"full_name"`
	Role         Role           `gorm:"not null;size:10;default:'CASHIER'" json:"role"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin returns true for admin accounts
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
