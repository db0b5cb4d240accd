package dto

import (
	"time"

	"storefront-service/internal/i18n"
	"storefront-service/internal/pricing"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

type LoginResponse struct {
	AdminAuth bool `json:"admin_auth"`
}

// AdminProductResponse keeps every translation and prices in major units.
type AdminProductResponse struct {
	ID          string              `json:"id"`
	Name        i18n.Text           `json:"name"`
	Description i18n.Text           `json:"description"`
	Price       pricing.MajorAmount `json:"price"`
	Images      []string            `json:"images"`
	Category    string              `json:"category"`
	Stock       int                 `json:"stock"`
	Rating      float64             `json:"rating"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type CreateProductRequest struct {
	Name        i18n.Text           `json:"name" binding:"required"`
	Description i18n.Text           `json:"description"`
	Price       pricing.MajorAmount `json:"price" binding:"required"`
	Images      []string            `json:"images"`
	Category    string              `json:"category" binding:"required" example:"electronics"`
	Stock       int                 `json:"stock" example:"10"`
	Rating      float64             `json:"rating" example:"4.5"`
}

type UpdateProductRequest struct {
	Name        *i18n.Text           `json:"name"`
	Description *i18n.Text           `json:"description"`
	Price       *pricing.MajorAmount `json:"price"`
	Images      *[]string            `json:"images"`
	Category    *string              `json:"category"`
	Stock       *int                 `json:"stock"`
	Rating      *float64             `json:"rating"`
}

type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Total int64           `json:"total"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required" example:"processing"`
}

type SalesResponse struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

type StatsResponse struct {
	TotalOrders       int             `json:"total_orders"`
	TotalRevenue      int64           `json:"total_revenue"`
	RevenueFormatted  string          `json:"total_revenue_formatted"`
	Currency          string          `json:"currency"`
	TotalProducts     int             `json:"total_products"`
	TotalCustomers    int             `json:"total_customers"`
	RecentOrders      []OrderResponse `json:"recent_orders"`
	Sales             SalesResponse   `json:"sales"`
}

type UpdateSettingsRequest struct {
	Name            *i18n.Text       `json:"name"`
	Logo            *string          `json:"logo"`
	PaymentMethods  *[]string        `json:"payment_methods"`
	ShippingMethods *[]string        `json:"shipping_methods"`
	Contact         *ContactResponse `json:"contact"`
}
