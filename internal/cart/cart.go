package cart

import (
	"encoding/json"
	"fmt"

	"github.com/angelmondragon/electroquick/pkg/types"
	"github.com/shopspring/decimal"
)

// Item is one cart line. A product id appears in at most one line.
type Item struct {
	Product  types.Product `json:"product"`
	Quantity int           `json:"quantity"`
}

// Cart is an immutable view of the cart. Items keep insertion order and Total
// always equals the sum of price times quantity over Items.
type Cart struct {
	Items []Item  `json:"items"`
	Total float64 `json:"total"`
}

// ItemCount returns the sum of quantities.
func (c Cart) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Quantity returns the quantity held for productID, 0 when absent.
func (c Cart) Quantity(productID string) int {
	if i := indexOf(c.Items, productID); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}

// clone returns a deep copy of c without recomputing the total.
func (c Cart) clone() Cart {
	out := Cart{Items: make([]Item, len(c.Items)), Total: c.Total}
	for i, it := range c.Items {
		out.Items[i] = Item{Product: it.Product.Clone(), Quantity: it.Quantity}
	}
	return out
}

func newCart(items []Item) Cart {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = Item{Product: it.Product.Clone(), Quantity: it.Quantity}
	}
	return Cart{Items: out, Total: computeTotal(items)}
}

func computeTotal(items []Item) float64 {
	sum := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Product.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		sum = sum.Add(line)
	}
	return sum.InexactFloat64()
}

func indexOf(items []Item, productID string) int {
	for i, it := range items {
		if it.Product.ID == productID {
			return i
		}
	}
	return -1
}

// mutation transforms the line list. Mutations never modify the slice they
// receive in place.
type mutation func(items []Item) []Item

func addMutation(product types.Product, quantity int) mutation {
	product = product.Clone()
	return func(items []Item) []Item {
		out := append([]Item(nil), items...)
		if i := indexOf(out, product.ID); i >= 0 {
			out[i].Quantity += quantity
			return out
		}
		return append(out, Item{Product: product, Quantity: quantity})
	}
}

func removeMutation(productID string) mutation {
	return func(items []Item) []Item {
		out := make([]Item, 0, len(items))
		for _, it := range items {
			if it.Product.ID != productID {
				out = append(out, it)
			}
		}
		return out
	}
}

func updateMutation(productID string, quantity int) mutation {
	if quantity <= 0 {
		return removeMutation(productID)
	}
	return func(items []Item) []Item {
		out := append([]Item(nil), items...)
		if i := indexOf(out, productID); i >= 0 {
			out[i].Quantity = quantity
		}
		return out
	}
}

func clearMutation() mutation {
	return func([]Item) []Item { return nil }
}

type persistedCart struct {
	Items []Item  `json:"items"`
	Total float64 `json:"total"`
}

func encode(c Cart) ([]byte, error) {
	items := c.Items
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(persistedCart{Items: items, Total: c.Total})
}

// decode parses a stored payload. Any invalid line rejects the whole payload;
// the stored total is ignored.
func decode(data []byte) ([]Item, error) {
	var p *persistedCart
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode cart payload: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("decode cart payload: null document")
	}

	seen := make(map[string]struct{}, len(p.Items))
	for i, it := range p.Items {
		switch {
		case !it.Product.HasIdentity():
			return nil, fmt.Errorf("item %d: blank product id", i)
		case it.Quantity < 1:
			return nil, fmt.Errorf("item %d (%s): quantity %d below 1", i, it.Product.ID, it.Quantity)
		case !it.Product.HasValidPrice():
			return nil, fmt.Errorf("item %d (%s): invalid price %v", i, it.Product.ID, it.Product.Price)
		}
		if _, dup := seen[it.Product.ID]; dup {
			return nil, fmt.Errorf("item %d: duplicate product id %s", i, it.Product.ID)
		}
		seen[it.Product.ID] = struct{}{}
	}
	return p.Items, nil
}
