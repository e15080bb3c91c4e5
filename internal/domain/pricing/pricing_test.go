package pricing

import "testing"

func TestResolveUnitPrice(t *testing.T) {
	tests := []struct {
		name     string
		sell     int64
		discount float64
		want     int64
	}{
		{name: "no discount", sell: 2500, discount: 0, want: 2500},
		{name: "negative discount ignored", sell: 2500, discount: -10, want: 2500},
		{name: "ten percent", sell: 1000, discount: 10, want: 900},
		{name: "rounds to nearest millime", sell: 999, discount: 33, want: 669},
		{name: "half price", sell: 2501, discount: 50, want: 1251},
		{name: "over hundred clamps to free", sell: 1000, discount: 150, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveUnitPrice(tt.sell, tt.discount); got != tt.want {
				t.Errorf("ResolveUnitPrice(%d, %v) = %d, want %d", tt.sell, tt.discount, got, tt.want)
			}
		})
	}
}

func TestComputeTicketExample(t *testing.T) {
	// 2 x 1.000 + 1 x 2.500 with the stamp enabled at 0.100
	lines := []Line{
		{UnitPrice: 1000, Quantity: 2},
		{UnitPrice: 2500, Quantity: 1},
	}
	settings := TicketSettings{TaxStampEnabled: true, TaxStampAmount: 100}

	totals := Compute(lines, settings)

	if totals.Subtotal != 4500 {
		t.Errorf("Subtotal = %d, want 4500", totals.Subtotal)
	}
	if totals.TaxStamp != 100 {
		t.Errorf("TaxStamp = %d, want 100", totals.TaxStamp)
	}
	if totals.Total != 4600 {
		t.Errorf("Total = %d, want 4600", totals.Total)
	}
	if totals.ItemCount != 2 || totals.TotalQuantity != 3 {
		t.Errorf("counts = (%d, %d), want (2, 3)", totals.ItemCount, totals.TotalQuantity)
	}
}

func TestComputeInvariants(t *testing.T) {
	tests := []struct {
		name     string
		lines    []Line
		settings TicketSettings
	}{
		{name: "empty cart", lines: nil, settings: TicketSettings{TaxStampEnabled: true, TaxStampAmount: 1000}},
		{name: "stamp disabled", lines: []Line{{UnitPrice: 750, Quantity: 4}}, settings: TicketSettings{TaxStampAmount: 1000}},
		{name: "many lines", lines: []Line{{UnitPrice: 1, Quantity: 99}, {UnitPrice: 12345, Quantity: 3}, {UnitPrice: 0, Quantity: 1}}, settings: TicketSettings{TaxStampEnabled: true, TaxStampAmount: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := Compute(tt.lines, tt.settings)

			var subtotal int64
			for _, line := range tt.lines {
				subtotal += line.UnitPrice * int64(line.Quantity)
			}
			if totals.Subtotal != subtotal {
				t.Errorf("Subtotal = %d, want %d", totals.Subtotal, subtotal)
			}
			if totals.Total != totals.Subtotal+totals.TaxStamp {
				t.Errorf("Total = %d, want Subtotal+TaxStamp = %d", totals.Total, totals.Subtotal+totals.TaxStamp)
			}
			if !tt.settings.TaxStampEnabled && totals.TaxStamp != 0 {
				t.Errorf("TaxStamp = %d with stamp disabled, want 0", totals.TaxStamp)
			}
		})
	}
}

func TestComputeIdempotent(t *testing.T) {
	lines := []Line{{UnitPrice: 1337, Quantity: 2}, {UnitPrice: 200, Quantity: 5}}
	settings := TicketSettings{TaxStampEnabled: true, TaxStampAmount: 1000}

	first := Compute(lines, settings)
	second := Compute(lines, settings)
	if first != second {
		t.Errorf("repeated Compute drifted: %+v vs %+v", first, second)
	}
}

func TestLoyaltyPoints(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		rate  float64
		want  int
	}{
		{name: "rate one", total: 10000, rate: 1, want: 10},
		{name: "floors fractional points", total: 10999, rate: 1, want: 10},
		{name: "half rate", total: 10000, rate: 0.5, want: 5},
		{name: "zero rate", total: 10000, rate: 0, want: 0},
		{name: "zero total", total: 0, rate: 2, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LoyaltyPoints(tt.total, tt.rate); got != tt.want {
				t.Errorf("LoyaltyPoints(%d, %v) = %d, want %d", tt.total, tt.rate, got, tt.want)
			}
		})
	}
}
