package sale

import (
	"errors"
	"testing"
	"time"

	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/domain/settings"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func testSettings() *settings.StoreSettings {
	return &settings.StoreSettings{
		TaxStampEnabled: true,
		TaxStampAmount:  100,
		LoyaltyEnabled:  true,
		LoyaltyRate:     1,
	}
}

func testCart(t *testing.T) *cart.TerminalCart {
	t.Helper()
	c := cart.NewTerminalCart("CAISSE-01", testNow)
	productA := &product.Product{ID: 1, Barcode: "A", Name: "Product A", SellPrice: 1000, StockQuantity: 10}
	productB := &product.Product{ID: 2, Barcode: "B", Name: "Product B", SellPrice: 2500, StockQuantity: 10}
	if !c.AddItem(productA, 2, testNow) || !c.AddItem(productB, 1, testNow) {
		t.Fatal("failed to build test cart")
	}
	return c
}

func TestBuildSaleRefusesEmptyCart(t *testing.T) {
	req := &FinalizeRequest{PaymentMethod: PaymentCash, CashierID: 1}

	_, err := BuildSale(cart.NewTerminalCart("CAISSE-01", testNow), testSettings(), req, true, testNow)
	if !errors.Is(err, ErrEmptyCart) {
		t.Errorf("err = %v, want ErrEmptyCart", err)
	}

	_, err = BuildSale(nil, testSettings(), req, true, testNow)
	if !errors.Is(err, ErrEmptyCart) {
		t.Errorf("nil cart err = %v, want ErrEmptyCart", err)
	}
}

func TestBuildSaleRejectsUnknownPaymentMethod(t *testing.T) {
	req := &FinalizeRequest{PaymentMethod: "BITCOIN", CashierID: 1}
	if _, err := BuildSale(testCart(t), testSettings(), req, true, testNow); err == nil {
		t.Error("expected error for unknown payment method")
	}
}

func TestBuildSaleTotals(t *testing.T) {
	req := &FinalizeRequest{PaymentMethod: PaymentCash, CashierID: 1}

	sl, err := BuildSale(testCart(t), testSettings(), req, true, testNow)
	if err != nil {
		t.Fatalf("BuildSale: %v", err)
	}

	if sl.SubtotalAmount != 4500 {
		t.Errorf("SubtotalAmount = %d, want 4500", sl.SubtotalAmount)
	}
	if sl.TaxStampAmount != 100 {
		t.Errorf("TaxStampAmount = %d, want 100", sl.TaxStampAmount)
	}
	if sl.TotalAmount != 4600 {
		t.Errorf("TotalAmount = %d, want 4600", sl.TotalAmount)
	}

	var lineSum int64
	for _, item := range sl.Items {
		lineSum += item.TotalPrice
	}
	if sl.TotalAmount != lineSum+sl.TaxStampAmount {
		t.Errorf("TotalAmount = %d, want line sum %d + stamp %d", sl.TotalAmount, lineSum, sl.TaxStampAmount)
	}
	if len(sl.Items) != 2 {
		t.Errorf("got %d items, want 2", len(sl.Items))
	}
}

func TestBuildSaleConnectivitySnapshot(t *testing.T) {
	req := &FinalizeRequest{PaymentMethod: PaymentCard, CashierID: 1}

	offline, err := BuildSale(testCart(t), testSettings(), req, false, testNow)
	if err != nil {
		t.Fatalf("BuildSale: %v", err)
	}
	if offline.IsSynced {
		t.Error("sale built offline must start unsynced")
	}

	online, err := BuildSale(testCart(t), testSettings(), req, true, testNow)
	if err != nil {
		t.Fatalf("BuildSale: %v", err)
	}
	if !online.IsSynced {
		t.Error("sale built online must start synced")
	}
}

func TestBuildSaleLoyaltyPoints(t *testing.T) {
	req := &FinalizeRequest{PaymentMethod: PaymentCash, CashierID: 1}

	// Total 4.600 at rate 1 floors to 4 points.
	sl, err := BuildSale(testCart(t), testSettings(), req, true, testNow)
	if err != nil {
		t.Fatalf("BuildSale: %v", err)
	}
	if sl.PointsEarned != 4 {
		t.Errorf("PointsEarned = %d, want 4", sl.PointsEarned)
	}

	disabled := testSettings()
	disabled.LoyaltyEnabled = false
	sl, err = BuildSale(testCart(t), disabled, req, true, testNow)
	if err != nil {
		t.Fatalf("BuildSale: %v", err)
	}
	if sl.PointsEarned != 0 {
		t.Errorf("PointsEarned = %d with loyalty disabled, want 0", sl.PointsEarned)
	}
}

func TestCreditDelta(t *testing.T) {
	customerID := uint(7)
	tests := []struct {
		name       string
		method     PaymentMethod
		customerID *uint
		want       int64
	}{
		{name: "credit with customer", method: PaymentCredit, customerID: &customerID, want: 4600},
		{name: "cash with customer", method: PaymentCash, customerID: &customerID, want: 0},
		{name: "card with customer", method: PaymentCard, customerID: &customerID, want: 0},
		{name: "credit without customer", method: PaymentCredit, customerID: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &FinalizeRequest{PaymentMethod: tt.method, CustomerID: tt.customerID, CashierID: 1}
			sl, err := BuildSale(testCart(t), testSettings(), req, true, testNow)
			if err != nil {
				t.Fatalf("BuildSale: %v", err)
			}
			if got := sl.CreditDelta(); got != tt.want {
				t.Errorf("CreditDelta() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStockDeltas(t *testing.T) {
	c := testCart(t)
	deltas := StockDeltas(c.Items)

	if len(deltas) != 2 {
		t.Fatalf("got %d deltas, want 2", len(deltas))
	}
	if deltas[1] != 2 {
		t.Errorf("delta for product 1 = %d, want 2", deltas[1])
	}
	if deltas[2] != 1 {
		t.Errorf("delta for product 2 = %d, want 1", deltas[2])
	}
	if _, ok := deltas[3]; ok {
		t.Error("untouched product appears in deltas")
	}
}
