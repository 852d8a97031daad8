package types

import (
	"math"
	"strings"
)

// Category groups catalog products.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product is the catalog record a cart line refers to. The cart only reads ID
// and Price; every other field is carried along untouched.
type Product struct {
	ID           string    `json:"id"`
	CategoryID   string    `json:"category_id"`
	Name         string    `json:"name"`
	Manufacturer string    `json:"manufacturer"`
	PartNumber   string    `json:"part_number"`
	Voltage      *float64  `json:"voltage,omitempty"`
	Current      *float64  `json:"current,omitempty"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	ImageURL     string    `json:"image_url"`
	Stock        int       `json:"stock"`
	DimensionsMM []float64 `json:"dimensions_mm,omitempty"`
}

// HasIdentity reports whether the product carries a usable, non-blank id.
func (p Product) HasIdentity() bool {
	return strings.TrimSpace(p.ID) != ""
}

// HasValidPrice reports whether Price is a finite, non-negative amount.
func (p Product) HasValidPrice() bool {
	return p.Price >= 0 && !math.IsInf(p.Price, 0) && !math.IsNaN(p.Price)
}

// Clone returns a deep copy so callers never share pointer or slice storage.
func (p Product) Clone() Product {
	out := p
	if p.Voltage != nil {
		v := *p.Voltage
		out.Voltage = &v
	}
	if p.Current != nil {
		c := *p.Current
		out.Current = &c
	}
	if p.DimensionsMM != nil {
		out.DimensionsMM = append([]float64(nil), p.DimensionsMM...)
	}
	return out
}
