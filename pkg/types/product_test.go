package types

import (
	"math"
	"testing"
)

func TestProductCloneIsDeep(t *testing.T) {
	volts := 5.0
	orig := Product{ID: "res-1", Price: 2.5, Voltage: &volts, DimensionsMM: []float64{6.3, 2.4}}

	clone := orig.Clone()
	*clone.Voltage = 12
	clone.DimensionsMM[0] = 99

	if *orig.Voltage != 5 {
		t.Fatalf("voltage aliased: %v", *orig.Voltage)
	}
	if orig.DimensionsMM[0] != 6.3 {
		t.Fatalf("dimensions aliased: %v", orig.DimensionsMM)
	}
}

func TestProductHasIdentity(t *testing.T) {
	if (Product{ID: "  "}).HasIdentity() {
		t.Fatal("blank id should not count as identity")
	}
	if !(Product{ID: "led-red-5mm"}).HasIdentity() {
		t.Fatal("expected identity")
	}
}

func TestProductHasValidPrice(t *testing.T) {
	cases := []struct {
		price float64
		want  bool
	}{
		{0, true},
		{12.5, true},
		{-0.01, false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
		{math.NaN(), false},
	}
	for _, tc := range cases {
		if got := (Product{ID: "p", Price: tc.price}).HasValidPrice(); got != tc.want {
			t.Fatalf("price %v: expected %v, got %v", tc.price, tc.want, got)
		}
	}
}
