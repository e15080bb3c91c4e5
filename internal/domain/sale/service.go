// internal/domain/sale/service.go
package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/customer"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/domain/settings"
	"github.com/your-org/pos-backend/internal/infrastructure/storage"
	"gorm.io/gorm"
)

// ConnectivityProbe reports the terminal's connectivity at a point in time
type ConnectivityProbe interface {
	IsOnline() bool
}

// Service finalizes tickets. Finalize is the only code path that mutates
// product stock and customer ledgers; the terminal is single-threaded so the
// database transaction is the only serialization needed.
type Service struct {
	db              *gorm.DB
	config          *config.Config
	store           storage.CollectionStore
	cartService     *cart.Service
	settingsService *settings.Service
	connectivity    ConnectivityProbe
}

// NewService creates a new sale service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, connectivity ConnectivityProbe) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		store:           storage.NewRedisStore(redisClient),
		cartService:     cart.NewService(db, redisClient, cfg),
		settingsService: settings.NewService(db, cfg),
		connectivity:    connectivity,
	}
}

// ListRequest represents sale list query parameters
type ListRequest struct {
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=20"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Unsynced bool   `form:"unsynced"`
}

// ListResponse represents sales with pagination
type ListResponse struct {
	Sales      []Sale     `json:"sales"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Finalize converts the terminal's cart into an immutable Sale and applies
// its side effects — stock decrements and customer ledger updates — in a
// single transaction, then clears the cart. An empty cart refuses to
// produce a sale.
func (s *Service) Finalize(ctx context.Context, terminalID string, req *FinalizeRequest) (*Sale, error) {
	snapshot, err := s.cartService.Snapshot(ctx, terminalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	st, err := s.settingsService.Get()
	if err != nil {
		return nil, err
	}

	newSale, err := BuildSale(snapshot, st, req, s.connectivity.IsOnline(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Persist the sale with its frozen lines
	if err := tx.Create(newSale).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to persist sale: %w", err)
	}

	// Decrement stock per line. No clamp: negative stock flags a restock
	// audit when the cart oversold.
	for productID, quantity := range StockDeltas(snapshot.Items) {
		result := tx.Model(&product.Product{}).
			Where("id = ?", productID).
			UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
		if result.Error != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to decrement stock for product %d: %w", productID, result.Error)
		}
	}

	// Customer ledger: credit grows only on CREDIT tickets, loyalty points
	// accrue on any payment method while the program is enabled.
	if req.CustomerID != nil {
		var cust customer.Customer
		if err := tx.Where("id = ?", *req.CustomerID).First(&cust).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("customer not found")
		}

		updates := map[string]interface{}{}
		if delta := newSale.CreditDelta(); delta > 0 {
			updates["credit_balance"] = gorm.Expr("credit_balance + ?", delta)
		}
		if st.LoyaltyEnabled && newSale.PointsEarned > 0 {
			updates["loyalty_points"] = gorm.Expr("loyalty_points + ?", newSale.PointsEarned)
		}
		if len(updates) > 0 {
			if err := tx.Model(&customer.Customer{}).Where("id = ?", cust.ID).Updates(updates).Error; err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("failed to update customer ledger: %w", err)
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit sale: %w", err)
	}

	// The ticket is closed; the terminal starts the next one from empty.
	if err := s.cartService.ClearCart(ctx, terminalID); err != nil {
		return nil, fmt.Errorf("sale %s persisted but cart clear failed: %w", newSale.SaleNumber, err)
	}

	// Advisory cache for reprinting the last ticket. The sale itself is
	// already committed, so a cache miss only means no instant reprint.
	_ = s.store.SaveAll(ctx, s.lastReceiptCollection(terminalID), newSale, 0)

	return newSale, nil
}

// LastReceipt returns the most recently finalized sale on this terminal, for
// ticket reprint
func (s *Service) LastReceipt(ctx context.Context, terminalID string) (*Sale, error) {
	var last Sale
	if err := s.store.LoadAll(ctx, s.lastReceiptCollection(terminalID), &last); err != nil {
		return nil, fmt.Errorf("no receipt to reprint: %w", err)
	}
	return &last, nil
}

func (s *Service) lastReceiptCollection(terminalID string) string {
	return fmt.Sprintf("receipt:last:%s", terminalID)
}

// ExportSales retrieves sales matching the filters without pagination, for
// the CSV export
func (s *Service) ExportSales(req *ListRequest) ([]Sale, error) {
	query := s.db.Model(&Sale{})
	if req.DateFrom != "" {
		if from, err := time.Parse("2006-01-02", req.DateFrom); err == nil {
			query = query.Where("timestamp >= ?", from)
		}
	}
	if req.DateTo != "" {
		if to, err := time.Parse("2006-01-02", req.DateTo); err == nil {
			query = query.Where("timestamp < ?", to.Add(24*time.Hour))
		}
	}

	var sales []Sale
	if err := query.Preload("Items").Order("timestamp ASC").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve sales for export: %w", err)
	}
	return sales, nil
}

// GetSale retrieves a sale with its lines
func (s *Service) GetSale(id uint) (*Sale, error) {
	var sl Sale
	if err := s.db.Preload("Items").Where("id = ?", id).First(&sl).Error; err != nil {
		return nil, fmt.Errorf("sale not found")
	}
	return &sl, nil
}

// ListSales retrieves finalized sales, newest first
func (s *Service) ListSales(req *ListRequest) (*ListResponse, error) {
	query := s.db.Model(&Sale{})

	if req.DateFrom != "" {
		if from, err := time.Parse("2006-01-02", req.DateFrom); err == nil {
			query = query.Where("timestamp >= ?", from)
		}
	}
	if req.DateTo != "" {
		if to, err := time.Parse("2006-01-02", req.DateTo); err == nil {
			query = query.Where("timestamp < ?", to.Add(24*time.Hour))
		}
	}
	if req.Unsynced {
		query = query.Where("is_synced = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count sales: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	var sales []Sale
	err := query.Preload("Items").
		Order("timestamp DESC").
		Offset((req.Page - 1) * req.Limit).
		Limit(req.Limit).
		Find(&sales).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve sales: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &ListResponse{
		Sales: sales,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}
