// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog item sold at the terminal.
// All prices are in millimes (3 decimal places).
type Product struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Barcode            string         `gorm:"uniqueIndex;not null;size:64" json:"barcode"`
	Name               string         `gorm:"not null;size:255" json:"name"`
	Category           string         `gorm:"size:100;index" json:"category"`
	BuyPrice           int64          `gorm:"not null;default:0" json:"buy_price"`
	SellPrice          int64          `gorm:"not null" json:"sell_price"`
	DiscountPercentage float64        `gorm:"default:0" json:"discount_percentage"` // 0-100
	TaxRate            float64        `gorm:"default:19" json:"tax_rate"`           // Carried per product, ticket pricing uses the flat rate
	StockQuantity      int            `gorm:"default:0;index" json:"stock_quantity"`
	MinStock           int            `gorm:"default:5" json:"min_stock"` // Reorder threshold
	ExpiryDate         *time.Time     `json:"expiry_date,omitempty"`
	ImageURL           string         `gorm:"size:500" json:"image_url"`
	IsActive           bool           `gorm:"default:true" json:"is_active"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// IsLowStock checks if stock is at or below the reorder threshold
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.MinStock
}

// IsOutOfStock checks if the product has no sellable stock
func (p *Product) IsOutOfStock() bool {
	return p.StockQuantity <= 0
}

// IsExpired checks if the product is past its expiry date
func (p *Product) IsExpired(now time.Time) bool {
	return p.ExpiryDate != nil && p.ExpiryDate.Before(now)
}

// IsNearExpiry checks if the product expires within 30 days
func (p *Product) IsNearExpiry(now time.Time) bool {
	if p.ExpiryDate == nil || p.IsExpired(now) {
		return false
	}
	return p.ExpiryDate.Sub(now) <= 30*24*time.Hour
}
