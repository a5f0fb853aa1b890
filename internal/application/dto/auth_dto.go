package dto

import "time"

// PinLoginRequest body para POST /api/auth/pin.
type PinLoginRequest struct {
	PIN string `json:"pin"`
}

// OperatorLoginRequest body para POST /api/auth/operator.
type OperatorLoginRequest struct {
	EmployeeID string `json:"amann_id"`
}

// TokenResponse token emitido y su vigencia.
type TokenResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	Subject   string    `json:"subject"`
	ExpiresAt time.Time `json:"expires_at"`
}
