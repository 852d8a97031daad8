package cart

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required,productid"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1,max=999"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0,max=999"`
}
