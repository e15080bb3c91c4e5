// internal/domain/settings/entity.go
package settings

import "time"

// StoreSettings is the single-row store configuration consumed by pricing
// and the sale finalizer. Changes take effect on the next ticket computation.
type StoreSettings struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:255" json:"name"`
	Address         string    `gorm:"size:500" json:"address"`
	Phone           string    `gorm:"size:30" json:"phone"`
	TaxID           string    `gorm:"size:50" json:"tax_id"`
	TaxStampEnabled bool      `gorm:"default:true" json:"tax_stamp_enabled"`
	TaxStampAmount  int64     `gorm:"default:0" json:"tax_stamp_amount"` // millimes, per ticket
	LoyaltyEnabled  bool      `gorm:"default:false" json:"loyalty_enabled"`
	LoyaltyRate     float64   `gorm:"default:0" json:"loyalty_rate"` // points per currency unit
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (StoreSettings) TableName() string {
	return "store_settings"
}
