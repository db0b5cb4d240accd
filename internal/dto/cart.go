package dto

type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required" example:"1"`
	Quantity  int    `json:"quantity" example:"1"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity" example:"2"`
}

type CartItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	Stock     int    `json:"stock"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Currency  string             `json:"currency"`
	Subtotal  string             `json:"subtotal"`
	Shipping  string             `json:"shipping"`
	Total     string             `json:"total"`
}
