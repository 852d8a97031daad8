// Package checkout prices a cart for the checkout screen. It does not place
// orders.
package checkout

import (
	"fmt"

	"github.com/angelmondragon/electroquick/internal/cart"
	"github.com/angelmondragon/electroquick/pkg/config"
	"github.com/shopspring/decimal"
)

// Summary is the priced view of a cart. Amounts are rounded to 2 decimals.
type Summary struct {
	ItemCount            int     `json:"item_count"`
	Subtotal             float64 `json:"subtotal"`
	DeliveryCharge       float64 `json:"delivery_charge"`
	FreeDelivery         bool    `json:"free_delivery"`
	AmountToFreeDelivery float64 `json:"amount_to_free_delivery"`
	TaxIncluded          float64 `json:"tax_included"`
	TaxRate              float64 `json:"tax_rate"`
	Total                float64 `json:"total"`
	Currency             string  `json:"currency"`
	CurrencySymbol       string  `json:"currency_symbol"`
}

// Calculator applies the configured delivery and tax rules.
type Calculator struct {
	cfg config.CheckoutConfig
}

func NewCalculator(cfg config.CheckoutConfig) (*Calculator, error) {
	if cfg.DeliveryCharge < 0 || cfg.FreeDeliveryThreshold < 0 || cfg.TaxRate < 0 {
		return nil, fmt.Errorf("checkout amounts must be non-negative")
	}
	return &Calculator{cfg: cfg}, nil
}

// Summarize prices snapshot. Delivery is free once the subtotal exceeds the
// threshold; an empty cart has nothing to deliver. Prices already include
// tax, so TaxIncluded is the tax share of the subtotal.
func (c *Calculator) Summarize(snapshot cart.Cart) Summary {
	subtotal := decimal.NewFromFloat(snapshot.Total)
	threshold := decimal.NewFromFloat(c.cfg.FreeDeliveryThreshold)
	rate := decimal.NewFromFloat(c.cfg.TaxRate)

	delivery := decimal.NewFromFloat(c.cfg.DeliveryCharge)
	toFree := threshold.Sub(subtotal)
	free := subtotal.GreaterThan(threshold)
	switch {
	case free:
		delivery = decimal.Zero
		toFree = decimal.Zero
	case len(snapshot.Items) == 0:
		delivery = decimal.Zero
	}

	tax := decimal.Zero
	if rate.IsPositive() {
		tax = subtotal.Mul(rate).Div(rate.Add(decimal.NewFromInt(100)))
	}

	return Summary{
		ItemCount:            snapshot.ItemCount(),
		Subtotal:             round(subtotal),
		DeliveryCharge:       round(delivery),
		FreeDelivery:         free,
		AmountToFreeDelivery: round(toFree),
		TaxIncluded:          round(tax),
		TaxRate:              c.cfg.TaxRate,
		Total:                round(subtotal.Add(delivery)),
		Currency:             c.cfg.Currency,
		CurrencySymbol:       c.cfg.CurrencySymbol,
	}
}

func round(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
