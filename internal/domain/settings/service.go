// internal/domain/settings/service.go
package settings

import (
	"fmt"

	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/pricing"
	"gorm.io/gorm"
)

// Service handles store settings
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new settings service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// UpdateSettingsRequest represents a settings update
type UpdateSettingsRequest struct {
	Name            *string  `json:"name,omitempty"`
	Address         *string  `json:"address,omitempty"`
	Phone           *string  `json:"phone,omitempty"`
	TaxID           *string  `json:"tax_id,omitempty"`
	TaxStampEnabled *bool    `json:"tax_stamp_enabled,omitempty"`
	TaxStampAmount  *int64   `json:"tax_stamp_amount,omitempty"`
	LoyaltyEnabled  *bool    `json:"loyalty_enabled,omitempty"`
	LoyaltyRate     *float64 `json:"loyalty_rate,omitempty"`
}

// Get returns the store settings row, seeding it from config defaults on
// first access.
func (s *Service) Get() (*StoreSettings, error) {
	var st StoreSettings
	err := s.db.First(&st).Error
	if err == gorm.ErrRecordNotFound {
		st = StoreSettings{
			Name:            s.config.Store.Name,
			Address:         s.config.Store.Address,
			Phone:           s.config.Store.Phone,
			TaxID:           s.config.Store.TaxID,
			TaxStampEnabled: s.config.Store.TaxStampEnabled,
			TaxStampAmount:  s.config.Store.TaxStampAmount,
			LoyaltyEnabled:  s.config.Store.LoyaltyEnabled,
			LoyaltyRate:     s.config.Store.LoyaltyRate,
		}
		if err := s.db.Create(&st).Error; err != nil {
			return nil, fmt.Errorf("failed to seed store settings: %w", err)
		}
		return &st, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load store settings: %w", err)
	}
	return &st, nil
}

// Update applies a partial settings update
func (s *Service) Update(req *UpdateSettingsRequest) (*StoreSettings, error) {
	st, err := s.Get()
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Address != nil {
		st.Address = *req.Address
	}
	if req.Phone != nil {
		st.Phone = *req.Phone
	}
	if req.TaxID != nil {
		st.TaxID = *req.TaxID
	}
	if req.TaxStampEnabled != nil {
		st.TaxStampEnabled = *req.TaxStampEnabled
	}
	if req.TaxStampAmount != nil {
		if *req.TaxStampAmount < 0 {
			return nil, fmt.Errorf("tax stamp amount cannot be negative")
		}
		st.TaxStampAmount = *req.TaxStampAmount
	}
	if req.LoyaltyEnabled != nil {
		st.LoyaltyEnabled = *req.LoyaltyEnabled
	}
	if req.LoyaltyRate != nil {
		if *req.LoyaltyRate < 0 {
			return nil, fmt.Errorf("loyalty rate cannot be negative")
		}
		st.LoyaltyRate = *req.LoyaltyRate
	}

	if err := s.db.Save(st).Error; err != nil {
		return nil, fmt.Errorf("failed to update store settings: %w", err)
	}

	return st, nil
}

// TicketSettings projects the settings row onto the slice the pricing
// engine consumes.
func (st *StoreSettings) TicketSettings() pricing.TicketSettings {
	return pricing.TicketSettings{
		TaxStampEnabled: st.TaxStampEnabled,
		TaxStampAmount:  st.TaxStampAmount,
	}
}
