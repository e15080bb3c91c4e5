// internal/domain/customer/entity.go
package customer

import (
	"time"

	"gorm.io/gorm"
)

// Customer represents a store customer with a credit and loyalty ledger.
// CreditBalance is the amount owed to the store for CREDIT-method purchases,
// in millimes. It only grows here; settlement happens outside this service.
type Customer struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null;size:255" json:"name"`
	Phone         string         `gorm:"size:30;index" json:"phone"`
	CreditBalance int64          `gorm:"not null;default:0" json:"credit_balance"`
	LoyaltyPoints int            `gorm:"not null;default:0" json:"loyalty_points"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Customer) TableName() string {
	return "customers"
}
