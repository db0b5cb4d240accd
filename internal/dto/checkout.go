package dto

import "time"

type CustomerRequest struct {
	FullName     string `json:"full_name" example:"أحمد محمد"`
	Phone        string `json:"phone" example:"0555123456"`
	State        string `json:"state" example:"الجزائر العاصمة"`
	Address      string `json:"address" example:"حي حسين داي"`
	DeliveryType string `json:"delivery_type" example:"home"`
}

type PaymentRequest struct {
	Method string `json:"method" binding:"required" example:"cod"`
}

type ProofResponse struct {
	Ref         string `json:"ref"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type CheckoutResponse struct {
	Step          int             `json:"step" example:"1"`
	StepName      string          `json:"step_name" example:"customer_info"`
	CanAdvance    bool            `json:"can_advance"`
	Customer      CustomerRequest `json:"customer"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Proof         *ProofResponse  `json:"proof,omitempty"`
	Cart          CartResponse    `json:"cart"`
	Order         *OrderResponse  `json:"order,omitempty"`
	Error         string          `json:"error,omitempty"`
}

type OrderItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type OrderResponse struct {
	ID             string              `json:"id"`
	Customer       CustomerRequest     `json:"customer"`
	Items          []OrderItemResponse `json:"items"`
	Total          int64               `json:"total"`
	TotalFormatted string              `json:"total_formatted"`
	Currency       string              `json:"currency"`
	Status         string              `json:"status"`
	StatusLabel    string              `json:"status_label"`
	NextStatuses   []string            `json:"next_statuses"`
	PaymentMethod  string              `json:"payment_method"`
	PaymentLabel   string              `json:"payment_label"`
	HasProof       bool                `json:"has_proof"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}
