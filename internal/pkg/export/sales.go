// internal/pkg/export/sales.go
package export

import (
	"bytes"
	"fmt"

	"github.com/gocarina/gocsv"
	"github.com/your-org/pos-backend/internal/domain/sale"
)

// SaleRow is one CSV line of the sales export. Amounts are dinars with
// three decimals so the back office reads them without conversion.
type SaleRow struct {
	SaleNumber    string  `csv:"sale_number"`
	Timestamp     string  `csv:"timestamp"`
	TerminalID    string  `csv:"terminal_id"`
	CashierID     uint    `csv:"cashier_id"`
	CustomerID    string  `csv:"customer_id"`
	PaymentMethod string  `csv:"payment_method"`
	ItemCount     int     `csv:"item_count"`
	Subtotal      float64 `csv:"subtotal_tnd"`
	Tax           float64 `csv:"tax_tnd"`
	TaxStamp      float64 `csv:"tax_stamp_tnd"`
	Total         float64 `csv:"total_tnd"`
	PointsEarned  int     `csv:"points_earned"`
	Synced        bool    `csv:"synced"`
}

// SalesCSV renders finalized sales as a CSV document, one row per sale
func SalesCSV(sales []sale.Sale) (*bytes.Buffer, error) {
	rows := make([]SaleRow, len(sales))
	for i, sl := range sales {
		customerID := ""
		if sl.CustomerID != nil {
			customerID = fmt.Sprintf("%d", *sl.CustomerID)
		}

		itemCount := 0
		for _, item := range sl.Items {
			itemCount += item.Quantity
		}

		rows[i] = SaleRow{
			SaleNumber:    sl.SaleNumber,
			Timestamp:     sl.Timestamp.Format("2006-01-02 15:04:05"),
			TerminalID:    sl.TerminalID,
			CashierID:     sl.CashierID,
			CustomerID:    customerID,
			PaymentMethod: string(sl.PaymentMethod),
			ItemCount:     itemCount,
			Subtotal:      dinars(sl.SubtotalAmount),
			Tax:           dinars(sl.TaxAmount),
			TaxStamp:      dinars(sl.TaxStampAmount),
			Total:         dinars(sl.TotalAmount),
			PointsEarned:  sl.PointsEarned,
			Synced:        sl.IsSynced,
		}
	}

	var buf bytes.Buffer
	if err := gocsv.Marshal(rows, &buf); err != nil {
		return nil, fmt.Errorf("failed to encode sales CSV: %w", err)
	}
	return &buf, nil
}

func dinars(millimes int64) float64 {
	return float64(millimes) / 1000
}
