package dto

import "time"

type SessionResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type PreferencesResponse struct {
	Language  string `json:"language" example:"ar"`
	Currency  string `json:"currency" example:"DZD"`
	AdminAuth bool   `json:"admin_auth"`
}

// UpdatePreferencesRequest меняет только переданные поля
type UpdatePreferencesRequest struct {
	Language *string `json:"language" example:"fr"`
	Currency *string `json:"currency" example:"EUR"`
}

type FormatRequest struct {
	Amount   int64  `json:"amount" example:"15000"`
	Currency string `json:"currency" binding:"required" example:"DZD"`
}

type FormatResponse struct {
	Formatted string `json:"formatted" example:"15,000 د.ج"`
}
