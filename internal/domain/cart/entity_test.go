package cart

import (
	"testing"
	"time"

	"github.com/your-org/pos-backend/internal/domain/product"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func testProduct(id uint, sellPrice int64, stock int) *product.Product {
	return &product.Product{
		ID:            id,
		Barcode:       "619000000000",
		Name:          "Test Product",
		SellPrice:     sellPrice,
		StockQuantity: stock,
	}
}

func TestAddItemMergesQuantities(t *testing.T) {
	c := NewTerminalCart("CAISSE-01", testNow)
	p := testProduct(1, 1000, 10)

	if !c.AddItem(p, 2, testNow) {
		t.Fatal("first add should change the cart")
	}
	if !c.AddItem(p, 3, testNow) {
		t.Fatal("second add should change the cart")
	}

	if len(c.Items) != 1 {
		t.Fatalf("got %d lines, want 1", len(c.Items))
	}
	if c.Items[0].Quantity != 5 {
		t.Errorf("Quantity = %d, want 5", c.Items[0].Quantity)
	}
}

func TestAddItemPrependsNewLines(t *testing.T) {
	c := NewTerminalCart("CAISSE-01", testNow)
	first := testProduct(1, 1000, 10)
	second := testProduct(2, 2500, 10)

	c.AddItem(first, 1, testNow)
	c.AddItem(second, 1, testNow)

	if c.Items[0].ProductID != 2 || c.Items[1].ProductID != 1 {
		t.Errorf("line order = [%d, %d], want most-recently-added first [2, 1]",
			c.Items[0].ProductID, c.Items[1].ProductID)
	}
}

func TestAddItemRejections(t *testing.T) {
	tests := []struct {
		name     string
		prod     *product.Product
		quantity int
	}{
		{name: "zero stock", prod: testProduct(1, 1000, 0), quantity: 1},
		{name: "negative stock", prod: testProduct(1, 1000, -2), quantity: 1},
		{name: "zero quantity", prod: testProduct(1, 1000, 10), quantity: 0},
		{name: "negative quantity", prod: testProduct(1, 1000, 10), quantity: -3},
		{name: "nil product", prod: nil, quantity: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewTerminalCart("CAISSE-01", testNow)
			if c.AddItem(tt.prod, tt.quantity, testNow) {
				t.Error("AddItem reported a change, want silent no-op")
			}
			if !c.IsEmpty() {
				t.Error("cart not empty after rejected add")
			}
		})
	}
}

func TestAddItemSnapshotsDiscountedPrice(t *testing.T) {
	c := NewTerminalCart("CAISSE-01", testNow)
	p := testProduct(1, 1000, 10)
	p.DiscountPercentage = 10

	c.AddItem(p, 1, testNow)

	if c.Items[0].UnitPrice != 900 {
		t.Errorf("UnitPrice = %d, want 900", c.Items[0].UnitPrice)
	}

	// A later catalog price change must not touch the snapshot.
	p.SellPrice = 5000
	if c.Items[0].UnitPrice != 900 {
		t.Errorf("UnitPrice drifted to %d after catalog change", c.Items[0].UnitPrice)
	}
}

func TestSetQuantity(t *testing.T) {
	c := NewTerminalCart("CAISSE-01", testNow)
	c.AddItem(testProduct(1, 1000, 10), 2, testNow)

	if !c.SetQuantity(1, 7, testNow) {
		t.Fatal("SetQuantity should change the cart")
	}
	if c.Items[0].Quantity != 7 {
		t.Errorf("Quantity = %d, want 7 (absolute set, not increment)", c.Items[0].Quantity)
	}

	// Invalid quantities leave the cart unchanged.
	for _, q := range []int{0, -1} {
		if c.SetQuantity(1, q, testNow) {
			t.Errorf("SetQuantity(%d) reported a change, want no-op", q)
		}
		if c.Items[0].Quantity != 7 {
			t.Errorf("Quantity = %d after SetQuantity(%d), want 7", c.Items[0].Quantity, q)
		}
	}

	// Unknown product is a no-op too.
	if c.SetQuantity(99, 3, testNow) {
		t.Error("SetQuantity on unknown product reported a change")
	}
}

func TestRemoveAndClear(t *testing.T) {
	c := NewTerminalCart("CAISSE-01", testNow)
	c.AddItem(testProduct(1, 1000, 10), 1, testNow)
	c.AddItem(testProduct(2, 2500, 10), 1, testNow)

	if !c.RemoveItem(1, testNow) {
		t.Fatal("RemoveItem should change the cart")
	}
	if len(c.Items) != 1 || c.Items[0].ProductID != 2 {
		t.Errorf("unexpected lines after remove: %+v", c.Items)
	}
	if c.RemoveItem(1, testNow) {
		t.Error("removing an absent product reported a change")
	}

	c.Clear(testNow)
	if !c.IsEmpty() {
		t.Error("cart not empty after Clear")
	}
}

func TestLines(t *testing.T) {
	c := NewTerminalCart("CAISSE-01", testNow)
	c.AddItem(testProduct(1, 1000, 10), 2, testNow)
	c.AddItem(testProduct(2, 2500, 10), 1, testNow)

	lines := c.Lines()
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var subtotal int64
	for _, line := range lines {
		subtotal += line.UnitPrice * int64(line.Quantity)
	}
	if subtotal != 4500 {
		t.Errorf("subtotal over lines = %d, want 4500", subtotal)
	}
}
