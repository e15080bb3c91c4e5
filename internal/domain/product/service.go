// internal/domain/product/service.go
package product

import (
	"fmt"
	"time"

	"github.com/your-org/pos-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles product catalog and stock business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateProductRequest represents product creation data
type CreateProductRequest struct {
	Barcode            string     `json:"barcode" binding:"required"`
	Name               string     `json:"name" binding:"required"`
	Category           string     `json:"category"`
	BuyPrice           int64      `json:"buy_price"`
	SellPrice          int64      `json:"sell_price" binding:"required,min=0"`
	DiscountPercentage float64    `json:"discount_percentage" binding:"min=0,max=100"`
	TaxRate            float64    `json:"tax_rate"`
	StockQuantity      int        `json:"stock_quantity" binding:"min=0"`
	MinStock           int        `json:"min_stock" binding:"min=0"`
	ExpiryDate         *time.Time `json:"expiry_date,omitempty"`
	ImageURL           string     `json:"image_url"`
}

// UpdateProductRequest represents product update data
type UpdateProductRequest struct {
	Name               *string    `json:"name,omitempty"`
	Category           *string    `json:"category,omitempty"`
	BuyPrice           *int64     `json:"buy_price,omitempty"`
	SellPrice          *int64     `json:"sell_price,omitempty"`
	DiscountPercentage *float64   `json:"discount_percentage,omitempty"`
	TaxRate            *float64   `json:"tax_rate,omitempty"`
	MinStock           *int       `json:"min_stock,omitempty"`
	ExpiryDate         *time.Time `json:"expiry_date,omitempty"`
	ImageURL           *string    `json:"image_url,omitempty"`
	IsActive           *bool      `json:"is_active,omitempty"`
}

// StockAdjustmentRequest represents a manual stock adjustment
type StockAdjustmentRequest struct {
	Delta int    `json:"delta" binding:"required"`
	Notes string `json:"notes,omitempty"`
}

// ListRequest represents product list query parameters
type ListRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=50"`
}

// CreateProduct creates a new catalog product
func (s *Service) CreateProduct(req *CreateProductRequest) (*Product, error) {
	var existing Product
	if err := s.db.Where("barcode = ?", req.Barcode).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("product with barcode '%s' already exists", req.Barcode)
	}

	taxRate := req.TaxRate
	if taxRate == 0 {
		taxRate = 19
	}

	prod := &Product{
		Barcode:            req.Barcode,
		Name:               req.Name,
		Category:           req.Category,
		BuyPrice:           req.BuyPrice,
		SellPrice:          req.SellPrice,
		DiscountPercentage: req.DiscountPercentage,
		TaxRate:            taxRate,
		StockQuantity:      req.StockQuantity,
		MinStock:           req.MinStock,
		ExpiryDate:         req.ExpiryDate,
		ImageURL:           req.ImageURL,
		IsActive:           true,
	}

	if err := s.db.Create(prod).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return prod, nil
}

// GetProduct retrieves a product by ID
func (s *Service) GetProduct(id uint) (*Product, error) {
	var prod Product
	if err := s.db.Where("id = ?", id).First(&prod).Error; err != nil {
		return nil, fmt.Errorf("product not found")
	}
	return &prod, nil
}

// GetProductByBarcode resolves a scanned or typed barcode to a product.
// This is the entry point for handheld scanner input.
func (s *Service) GetProductByBarcode(barcode string) (*Product, error) {
	var prod Product
	if err := s.db.Where("barcode = ? AND is_active = ?", barcode, true).First(&prod).Error; err != nil {
		return nil, fmt.Errorf("no product for barcode '%s'", barcode)
	}
	return &prod, nil
}

// ListProducts retrieves products with search and category filters
func (s *Service) ListProducts(req *ListRequest) ([]Product, int64, error) {
	query := s.db.Model(&Product{}).Where("is_active = ?", true)

	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("name ILIKE ? OR barcode LIKE ?", like, like)
	}
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 200 {
		req.Limit = 50
	}

	var products []Product
	err := query.Order("name ASC").
		Offset((req.Page - 1) * req.Limit).
		Limit(req.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve products: %w", err)
	}

	return products, total, nil
}

// UpdateProduct updates catalog fields of a product
func (s *Service) UpdateProduct(id uint, req *UpdateProductRequest) (*Product, error) {
	prod, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Category != nil {
		prod.Category = *req.Category
	}
	if req.BuyPrice != nil {
		prod.BuyPrice = *req.BuyPrice
	}
	if req.SellPrice != nil {
		prod.SellPrice = *req.SellPrice
	}
	if req.DiscountPercentage != nil {
		prod.DiscountPercentage = *req.DiscountPercentage
	}
	if req.TaxRate != nil {
		prod.TaxRate = *req.TaxRate
	}
	if req.MinStock != nil {
		prod.MinStock = *req.MinStock
	}
	if req.ExpiryDate != nil {
		prod.ExpiryDate = req.ExpiryDate
	}
	if req.ImageURL != nil {
		prod.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		prod.IsActive = *req.IsActive
	}

	if err := s.db.Save(prod).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return prod, nil
}

// AdjustStock applies a manual stock adjustment (restock or correction).
// The resulting quantity is clamped at zero; sale decrements go through the
// sale finalizer instead and are allowed to drive stock negative.
func (s *Service) AdjustStock(id uint, req *StockAdjustmentRequest) (*Product, error) {
	prod, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	newQuantity := prod.StockQuantity + req.Delta
	if newQuantity < 0 {
		newQuantity = 0
	}
	prod.StockQuantity = newQuantity

	if err := s.db.Save(prod).Error; err != nil {
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	return prod, nil
}

// DeleteProduct soft-deletes a product
func (s *Service) DeleteProduct(id uint) error {
	result := s.db.Delete(&Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}

// LowStockProducts lists active products at or below their reorder threshold
func (s *Service) LowStockProducts() ([]Product, error) {
	var products []Product
	err := s.db.Where("is_active = ? AND stock_quantity <= min_stock", true).
		Order("stock_quantity ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve low stock products: %w", err)
	}
	return products, nil
}

// NearExpiryProducts lists active products expiring within 30 days
func (s *Service) NearExpiryProducts() ([]Product, error) {
	now := time.Now().UTC()
	var products []Product
	err := s.db.Where("is_active = ? AND expiry_date IS NOT NULL AND expiry_date > ? AND expiry_date <= ?",
		true, now, now.Add(30*24*time.Hour)).
		Order("expiry_date ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve near-expiry products: %w", err)
	}
	return products, nil
}
