// internal/domain/sale/entity.go
package sale

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is the self-reported payment method of a ticket
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentCard   PaymentMethod = "CARD"
	PaymentCheck  PaymentMethod = "CHECK"
	PaymentCredit PaymentMethod = "CREDIT"
)

// Valid reports whether the payment method is one the terminal accepts
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentCheck, PaymentCredit:
		return true
	}
	return false
}

// Sale represents one finalized ticket. A Sale is immutable once created;
// the only field that changes afterwards is IsSynced, flipped by the sync
// queue when the remote system acknowledges the batch. Amounts in millimes.
type Sale struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	SaleNumber     string        `gorm:"uniqueIndex;not null;size:50" json:"sale_number"`
	Timestamp      time.Time     `gorm:"not null;index" json:"timestamp"`
	SubtotalAmount int64         `gorm:"not null" json:"subtotal_amount"`
	TaxAmount      int64         `gorm:"default:0" json:"tax_amount"`      // Informational flat-rate VAT
	TaxStampAmount int64         `gorm:"default:0" json:"tax_stamp_amount"` // Once per ticket
	TotalAmount    int64         `gorm:"not null" json:"total_amount"`
	PaymentMethod  PaymentMethod `gorm:"not null;size:10" json:"payment_method"`
	CustomerID     *uint         `gorm:"index" json:"customer_id,omitempty"`
	CashierID      uint          `gorm:"not null;index" json:"cashier_id"`
	TerminalID     string        `gorm:"size:50" json:"terminal_id"`
	PointsEarned   int           `gorm:"default:0" json:"points_earned"`
	IsSynced       bool          `gorm:"not null;default:false;index" json:"is_synced"`
	SyncedAt       *time.Time    `json:"synced_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`

	// Relationships
	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// SaleItem is a frozen copy of one cart line
type SaleItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SaleID     uint      `gorm:"not null;index" json:"sale_id"`
	ProductID  uint      `gorm:"not null;index" json:"product_id"`
	Barcode    string    `gorm:"size:64" json:"barcode"`
	Name       string    `gorm:"not null;size:255" json:"name"`
	UnitPrice  int64     `gorm:"not null" json:"unit_price"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	TotalPrice int64     `gorm:"not null" json:"total_price"` // UnitPrice * Quantity
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides
func (Sale) TableName() string     { return "sales" }
func (SaleItem) TableName() string { return "sale_items" }

// NewSaleNumber generates a unique ticket number.
// Format: POS-YYYYMMDD-XXXXXXXX
func NewSaleNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("POS-%s-%s", now.Format("20060102"), suffix)
}

// CreditDelta returns the amount this sale adds to the customer's credit
// balance: the full total for CREDIT tickets with a customer attached,
// zero otherwise.
func (s *Sale) CreditDelta() int64 {
	if s.PaymentMethod == PaymentCredit && s.CustomerID != nil {
		return s.TotalAmount
	}
	return 0
}
