package service

import "errors"

var (
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrProductNotFound         = errors.New("product not found")
	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidProduct          = errors.New("invalid product")
	ErrInvalidSettings         = errors.New("invalid settings")
	ErrInvalidStatus           = errors.New("invalid order status")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrCartEmpty               = errors.New("cart is empty")
	ErrCartOutdated            = errors.New("cart refers to unavailable products")
	ErrInvalidPaymentMethod    = errors.New("invalid payment method")
	ErrPaymentProofRequired    = errors.New("payment proof required")
)
