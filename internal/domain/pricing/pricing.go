// internal/domain/pricing/pricing.go
package pricing

import "math"

// TaxRatePercent is the flat informational VAT rate applied to the ticket
// subtotal. Products carry their own rate field but the ticket total has
// always been computed against this flat rate; changing it would break
// compatibility with previously issued tickets.
const TaxRatePercent = 19.0

// Line is one priced cart line. UnitPrice is in millimes and already has the
// product discount baked in.
type Line struct {
	UnitPrice int64 `json:"unit_price"`
	Quantity  int   `json:"quantity"`
}

// TicketSettings is the slice of store settings the pricing engine consumes.
type TicketSettings struct {
	TaxStampEnabled bool  `json:"tax_stamp_enabled"`
	TaxStampAmount  int64 `json:"tax_stamp_amount"` // millimes, per ticket
}

// Totals represents computed ticket totals. All amounts in millimes.
type Totals struct {
	ItemCount     int   `json:"item_count"`     // Number of unique lines
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities
	Subtotal      int64 `json:"subtotal"`       // Sum of line totals, excludes tax stamp
	TaxAmount     int64 `json:"tax_amount"`     // Informational flat-rate VAT on subtotal
	TaxStamp      int64 `json:"tax_stamp"`      // Flat per-ticket levy, not per line
	Total         int64 `json:"total"`          // Subtotal + tax stamp
}

// ResolveUnitPrice resolves the effective unit price at add-to-cart time,
// applying the product discount and rounding to the whole millime. The result
// is snapshotted on the cart line and never re-derived afterwards.
func ResolveUnitPrice(sellPrice int64, discountPercentage float64) int64 {
	if discountPercentage <= 0 {
		return sellPrice
	}
	if discountPercentage > 100 {
		discountPercentage = 100
	}
	return int64(math.Round(float64(sellPrice) * (100 - discountPercentage) / 100))
}

// Compute calculates ticket totals from priced lines and store settings.
// It is pure: calling it any number of times on the same input yields the
// same Totals with no side effects.
func Compute(lines []Line, ts TicketSettings) Totals {
	var totals Totals

	totals.ItemCount = len(lines)
	for _, line := range lines {
		totals.TotalQuantity += line.Quantity
		totals.Subtotal += line.UnitPrice * int64(line.Quantity)
	}

	totals.TaxAmount = int64(float64(totals.Subtotal) * TaxRatePercent / 100)
	if ts.TaxStampEnabled {
		totals.TaxStamp = ts.TaxStampAmount
	}
	totals.Total = totals.Subtotal + totals.TaxStamp

	return totals
}

// LoyaltyPoints returns the points earned for a ticket total at the given
// rate (points per currency unit spent, floor-rounded). Totals are in
// millimes, the rate is per whole currency unit.
func LoyaltyPoints(total int64, rate float64) int {
	if rate <= 0 || total <= 0 {
		return 0
	}
	return int(math.Floor(float64(total) / 1000 * rate))
}
