// internal/domain/customer/service.go
package customer

import (
	"fmt"

	"github.com/your-org/pos-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles customer ledger business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new customer service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateCustomerRequest represents customer creation data
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// CreateCustomer creates a new customer record
func (s *Service) CreateCustomer(req *CreateCustomerRequest) (*Customer, error) {
	cust := &Customer{
		Name:  req.Name,
		Phone: req.Phone,
	}

	if err := s.db.Create(cust).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return cust, nil
}

// GetCustomer retrieves a customer by ID
func (s *Service) GetCustomer(id uint) (*Customer, error) {
	var cust Customer
	if err := s.db.Where("id = ?", id).First(&cust).Error; err != nil {
		return nil, fmt.Errorf("customer not found")
	}
	return &cust, nil
}

// ListCustomers retrieves all customers
func (s *Service) ListCustomers() ([]Customer, error) {
	var customers []Customer
	if err := s.db.Order("name ASC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve customers: %w", err)
	}
	return customers, nil
}
