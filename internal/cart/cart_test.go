package cart

import (
	"testing"

	"github.com/angelmondragon/electroquick/pkg/types"
)

func TestMutationsDoNotAliasInput(t *testing.T) {
	t.Parallel()

	base := []Item{{Product: types.Product{ID: "a", Price: 1}, Quantity: 1}}

	added := addMutation(types.Product{ID: "a", Price: 1}, 2)(base)
	if base[0].Quantity != 1 {
		t.Fatalf("add modified its input: %+v", base)
	}
	if added[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", added[0].Quantity)
	}

	updated := updateMutation("a", 9)(base)
	if base[0].Quantity != 1 || updated[0].Quantity != 9 {
		t.Fatalf("update aliasing: base=%+v updated=%+v", base, updated)
	}

	if out := removeMutation("a")(base); len(out) != 0 || len(base) != 1 {
		t.Fatalf("remove aliasing: base=%+v out=%+v", base, out)
	}
	if out := clearMutation()(base); len(out) != 0 {
		t.Fatalf("expected clear to drop every item, got %+v", out)
	}
}

func TestComputeTotal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		items []Item
		want  float64
	}{
		{"empty", nil, 0},
		{"single", []Item{{Product: types.Product{ID: "a", Price: 19.99}, Quantity: 3}}, 59.97},
		{"mixed", []Item{
			{Product: types.Product{ID: "a", Price: 0.1}, Quantity: 1},
			{Product: types.Product{ID: "b", Price: 0.2}, Quantity: 1},
		}, 0.3},
		{"free item", []Item{{Product: types.Product{ID: "a"}, Quantity: 4}}, 0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := computeTotal(tc.items); got != tc.want {
				t.Fatalf("computeTotal = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDecodeAcceptsEmptyAndIgnoresStoredTotal(t *testing.T) {
	t.Parallel()

	items, err := decode([]byte(`{"items":[],"total":42}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %+v", items)
	}

	items, err = decode([]byte(`{"total":1}`))
	if err != nil || len(items) != 0 {
		t.Fatalf("missing items should decode as empty: items=%+v err=%v", items, err)
	}
}
