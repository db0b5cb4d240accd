package dto

import (
	"time"

	"storefront-service/internal/i18n"
	"storefront-service/internal/pricing"
)

// ProductResponse is a product rendered in the client's language and currency.
type ProductResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Price          int64            `json:"price"`
	PriceFormatted string           `json:"price_formatted"`
	Currency       string           `json:"currency"`
	Images         []string         `json:"images"`
	Category       string           `json:"category"`
	CategoryName   string           `json:"category_name"`
	Stock          int              `json:"stock"`
	InStock        bool             `json:"in_stock"`
	Rating         float64          `json:"rating"`
	Reviews        []ReviewResponse `json:"reviews,omitempty"`
}

type ReviewResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type CategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type ContactResponse struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type SettingsResponse struct {
	Name            string          `json:"name"`
	Names           i18n.Text       `json:"names"`
	Logo            string          `json:"logo"`
	PaymentMethods  []string        `json:"payment_methods"`
	ShippingMethods []string        `json:"shipping_methods"`
	Contact         ContactResponse `json:"contact"`
	ShippingFee     pricing.Amount  `json:"shipping_fee"`
}
