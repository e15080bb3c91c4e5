// internal/domain/sale/finalize.go
package sale

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/pricing"
	"github.com/your-org/pos-backend/internal/domain/settings"
)

// ErrEmptyCart is returned when finalize is attempted on an empty cart.
// No Sale is produced and no side effects are applied.
var ErrEmptyCart = errors.New("cart is empty")

// FinalizeRequest represents the payment data closing a ticket
type FinalizeRequest struct {
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required"`
	CustomerID    *uint         `json:"customer_id,omitempty"`
	CashierID     uint          `json:"cashier_id"`
}

// BuildSale constructs the immutable Sale record from a cart snapshot. It is
// pure: totals come from the pricing engine, points from the loyalty rate,
// and IsSynced from the connectivity state at this instant — a sale built
// offline stays marked for later reconciliation even if connectivity returns
// a moment later.
func BuildSale(c *cart.TerminalCart, st *settings.StoreSettings, req *FinalizeRequest, online bool, now time.Time) (*Sale, error) {
	if c == nil || c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("invalid payment method '%s'", req.PaymentMethod)
	}

	totals := pricing.Compute(c.Lines(), st.TicketSettings())

	pointsEarned := 0
	if st.LoyaltyEnabled {
		pointsEarned = pricing.LoyaltyPoints(totals.Total, st.LoyaltyRate)
	}

	items := make([]SaleItem, len(c.Items))
	for i, line := range c.Items {
		items[i] = SaleItem{
			ProductID:  line.ProductID,
			Barcode:    line.Barcode,
			Name:       line.Name,
			UnitPrice:  line.UnitPrice,
			Quantity:   line.Quantity,
			TotalPrice: line.LineTotal(),
		}
	}

	return &Sale{
		SaleNumber:     NewSaleNumber(now),
		Timestamp:      now,
		SubtotalAmount: totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		TaxStampAmount: totals.TaxStamp,
		TotalAmount:    totals.Total,
		PaymentMethod:  req.PaymentMethod,
		CustomerID:     req.CustomerID,
		CashierID:      req.CashierID,
		TerminalID:     c.TerminalID,
		PointsEarned:   pointsEarned,
		IsSynced:       online,
		Items:          items,
	}, nil
}

// StockDeltas returns the per-product stock decrement for a cart snapshot.
// Quantities are positive; the caller subtracts them. Stock may go negative
// when the cart oversold — that is kept as a restock-audit signal rather
// than clamped away.
func StockDeltas(items []cart.Item) map[uint]int {
	deltas := make(map[uint]int, len(items))
	for _, item := range items {
		deltas[item.ProductID] += item.Quantity
	}
	return deltas
}
