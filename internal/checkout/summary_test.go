package checkout

import (
	"testing"

	"github.com/angelmondragon/electroquick/internal/cart"
	"github.com/angelmondragon/electroquick/pkg/config"
	"github.com/angelmondragon/electroquick/pkg/types"
)

func defaultConfig() config.CheckoutConfig {
	return config.CheckoutConfig{
		Currency:              "INR",
		CurrencySymbol:        "₹",
		DeliveryCharge:        50,
		FreeDeliveryThreshold: 500,
		TaxRate:               18,
	}
}

func cartWith(price float64, qty int) cart.Cart {
	return cart.Cart{
		Items: []cart.Item{{Product: types.Product{ID: "p1", Price: price}, Quantity: qty}},
		Total: price * float64(qty),
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	calc, err := NewCalculator(defaultConfig())
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}

	cases := []struct {
		name     string
		cart     cart.Cart
		delivery float64
		free     bool
		toFree   float64
		total    float64
		tax      float64
		count    int
	}{
		{name: "below threshold", cart: cartWith(118, 2), delivery: 50, toFree: 264, total: 286, tax: 36, count: 2},
		{name: "exactly threshold is not free", cart: cartWith(250, 2), delivery: 50, toFree: 0, total: 550, tax: 76.27, count: 2},
		{name: "above threshold", cart: cartWith(501, 1), delivery: 0, free: true, toFree: 0, total: 501, tax: 76.42, count: 1},
		{name: "empty cart", cart: cart.Cart{Items: []cart.Item{}}, delivery: 0, toFree: 500, total: 0, tax: 0, count: 0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := calc.Summarize(tc.cart)
			if got.DeliveryCharge != tc.delivery {
				t.Fatalf("delivery = %v, want %v", got.DeliveryCharge, tc.delivery)
			}
			if got.FreeDelivery != tc.free {
				t.Fatalf("free = %v, want %v", got.FreeDelivery, tc.free)
			}
			if got.AmountToFreeDelivery != tc.toFree {
				t.Fatalf("to free = %v, want %v", got.AmountToFreeDelivery, tc.toFree)
			}
			if got.Total != tc.total {
				t.Fatalf("total = %v, want %v", got.Total, tc.total)
			}
			if got.TaxIncluded != tc.tax {
				t.Fatalf("tax = %v, want %v", got.TaxIncluded, tc.tax)
			}
			if got.ItemCount != tc.count {
				t.Fatalf("count = %v, want %v", got.ItemCount, tc.count)
			}
			if got.Currency != "INR" || got.CurrencySymbol != "₹" {
				t.Fatalf("unexpected currency %q %q", got.Currency, got.CurrencySymbol)
			}
		})
	}
}

func TestSummarizeRoundsToPaise(t *testing.T) {
	t.Parallel()

	calc, err := NewCalculator(defaultConfig())
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}
	got := calc.Summarize(cartWith(33.333, 3))
	if got.Subtotal != 100 {
		t.Fatalf("subtotal = %v, want 100", got.Subtotal)
	}
	if got.Total != 150 {
		t.Fatalf("total = %v, want 150", got.Total)
	}
}

func TestSummarizeWithoutTax(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.TaxRate = 0
	calc, err := NewCalculator(cfg)
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}
	if got := calc.Summarize(cartWith(100, 1)); got.TaxIncluded != 0 {
		t.Fatalf("expected no tax, got %v", got.TaxIncluded)
	}
}

func TestNewCalculatorRejectsNegativeAmounts(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.DeliveryCharge = -1
	if _, err := NewCalculator(cfg); err == nil {
		t.Fatal("expected error for negative delivery charge")
	}
}
