package dto

import "github.com/shopspring/decimal"

type CrearCotizacionRequest struct {
	ClienteID *string         `json:"cliente_id" validate:"omitempty,uuid"`
	Total     decimal.Decimal `json:"total"      validate:"required"`
}

type CotizacionResponse struct {
	ID        string          `json:"id"`
	ClienteID *string         `json:"cliente_id,omitempty"`
	Estado    string          `json:"estado"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt string          `json:"created_at"`
}
