// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/pricing"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/domain/settings"
	"github.com/your-org/pos-backend/internal/infrastructure/storage"
	"gorm.io/gorm"
)

// Terminal carts survive a terminal restart but not a full day; a stale cart
// is abandoned, never finalized.
const cartTTL = 24 * time.Hour

// Service handles cart business logic. The cart itself lives in the
// collection store keyed by terminal ID so the terminal process can crash
// without losing the ticket in progress.
type Service struct {
	db              *gorm.DB
	store           storage.CollectionStore
	config          *config.Config
	settingsService *settings.Service
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		store:           storage.NewRedisStore(redisClient),
		config:          cfg,
		settingsService: settings.NewService(db, cfg),
	}
}

// CartResponse represents the cart with recomputed totals
type CartResponse struct {
	TerminalID string         `json:"terminal_id"`
	Items      []Item         `json:"items"`
	Totals     pricing.Totals `json:"totals"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// AddItemRequest represents add to cart request. Either ProductID or Barcode
// identifies the product; Barcode is how scanner input arrives.
type AddItemRequest struct {
	ProductID uint   `json:"product_id"`
	Barcode   string `json:"barcode"`
	Quantity  int    `json:"quantity"`
}

// SetQuantityRequest represents an absolute quantity update
type SetQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart retrieves the terminal's cart with totals recomputed from the
// current store settings.
func (s *Service) GetCart(ctx context.Context, terminalID string) (*CartResponse, error) {
	terminalCart, err := s.loadCart(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	return s.respond(terminalCart)
}

// AddItem adds a product to the terminal's cart. Adding a product with no
// stock or a non-positive quantity leaves the cart unchanged; the caller is
// responsible for surfacing that to the cashier.
func (s *Service) AddItem(ctx context.Context, terminalID string, req *AddItemRequest) (*CartResponse, error) {
	prod, err := s.resolveProduct(req)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	terminalCart, err := s.loadCart(ctx, terminalID)
	if err != nil {
		return nil, err
	}

	if terminalCart.AddItem(prod, quantity, time.Now().UTC()) {
		if err := s.saveCart(ctx, terminalCart); err != nil {
			return nil, err
		}
	}

	return s.respond(terminalCart)
}

// SetQuantity replaces a line's quantity. Values below 1 leave the cart
// unchanged.
func (s *Service) SetQuantity(ctx context.Context, terminalID string, productID uint, req *SetQuantityRequest) (*CartResponse, error) {
	terminalCart, err := s.loadCart(ctx, terminalID)
	if err != nil {
		return nil, err
	}

	if terminalCart.SetQuantity(productID, req.Quantity, time.Now().UTC()) {
		if err := s.saveCart(ctx, terminalCart); err != nil {
			return nil, err
		}
	}

	return s.respond(terminalCart)
}

// RemoveItem removes a line from the terminal's cart
func (s *Service) RemoveItem(ctx context.Context, terminalID string, productID uint) (*CartResponse, error) {
	terminalCart, err := s.loadCart(ctx, terminalID)
	if err != nil {
		return nil, err
	}

	if terminalCart.RemoveItem(productID, time.Now().UTC()) {
		if err := s.saveCart(ctx, terminalCart); err != nil {
			return nil, err
		}
	}

	return s.respond(terminalCart)
}

// ClearCart empties the terminal's cart (ticket cancelled, no sale created)
func (s *Service) ClearCart(ctx context.Context, terminalID string) error {
	return s.store.Delete(ctx, s.collection(terminalID))
}

// Snapshot returns the raw cart for the sale finalizer
func (s *Service) Snapshot(ctx context.Context, terminalID string) (*TerminalCart, error) {
	return s.loadCart(ctx, terminalID)
}

// Private helpers

func (s *Service) resolveProduct(req *AddItemRequest) (*product.Product, error) {
	var prod product.Product
	switch {
	case req.ProductID != 0:
		if err := s.db.Where("id = ? AND is_active = ?", req.ProductID, true).First(&prod).Error; err != nil {
			return nil, fmt.Errorf("product not found or inactive")
		}
	case req.Barcode != "":
		if err := s.db.Where("barcode = ? AND is_active = ?", req.Barcode, true).First(&prod).Error; err != nil {
			return nil, fmt.Errorf("no product for barcode '%s'", req.Barcode)
		}
	default:
		return nil, fmt.Errorf("product_id or barcode required")
	}
	return &prod, nil
}

func (s *Service) collection(terminalID string) string {
	return fmt.Sprintf("cart:terminal:%s", terminalID)
}

func (s *Service) loadCart(ctx context.Context, terminalID string) (*TerminalCart, error) {
	if terminalID == "" {
		return nil, fmt.Errorf("terminal ID required")
	}

	var terminalCart TerminalCart
	err := s.store.LoadAll(ctx, s.collection(terminalID), &terminalCart)
	if errors.Is(err, storage.ErrNotFound) {
		return NewTerminalCart(terminalID, time.Now().UTC()), nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	return &terminalCart, nil
}

func (s *Service) saveCart(ctx context.Context, terminalCart *TerminalCart) error {
	return s.store.SaveAll(ctx, s.collection(terminalCart.TerminalID), terminalCart, cartTTL)
}

// respond recomputes totals from the current settings on every mutation
func (s *Service) respond(terminalCart *TerminalCart) (*CartResponse, error) {
	st, err := s.settingsService.Get()
	if err != nil {
		return nil, err
	}

	return &CartResponse{
		TerminalID: terminalCart.TerminalID,
		Items:      terminalCart.Items,
		Totals:     pricing.Compute(terminalCart.Lines(), st.TicketSettings()),
		CreatedAt:  terminalCart.CreatedAt,
		UpdatedAt:  terminalCart.UpdatedAt,
	}, nil
}
