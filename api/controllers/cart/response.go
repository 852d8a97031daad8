package cart

import cartsvc "github.com/angelmondragon/electroquick/internal/cart"

type cartResponse struct {
	Items     []cartsvc.Item `json:"items"`
	Total     float64        `json:"total"`
	ItemCount int            `json:"item_count"`
}

func newCartResponse(c cartsvc.Cart) cartResponse {
	items := c.Items
	if items == nil {
		items = []cartsvc.Item{}
	}
	return cartResponse{Items: items, Total: c.Total, ItemCount: c.ItemCount()}
}

type itemStatusResponse struct {
	ProductID string `json:"product_id"`
	InCart    bool   `json:"in_cart"`
	Quantity  int    `json:"quantity"`
}

type countResponse struct {
	Count int `json:"count"`
}
