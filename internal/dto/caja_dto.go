package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	FondoInicial decimal.Decimal `json:"fondo_inicial" validate:"min=0"`
}

type CerrarCajaRequest struct {
	// MontoContado is the physically counted cash. Required: a close without a
	// count is rejected.
	MontoContado *decimal.Decimal `json:"monto_contado"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// MontosPorMetodo holds the theoretical totals grouped by payment method.
type MontosPorMetodo struct {
	Efectivo       decimal.Decimal `json:"efectivo"`
	Transferencia  decimal.Decimal `json:"transferencia"`
	TarjetaDebito  decimal.Decimal `json:"tarjeta_debito"`
	TarjetaCredito decimal.Decimal `json:"tarjeta_credito"`
	Total          decimal.Decimal `json:"total"`
}

type ResumenCajaResponse struct {
	SesionCajaID    string          `json:"sesion_caja_id"`
	UsuarioID       string          `json:"usuario_id"`
	Estado          string          `json:"estado"`
	FondoInicial    decimal.Decimal `json:"fondo_inicial"`
	Totales         MontosPorMetodo `json:"totales"`
	VueltoEntregado decimal.Decimal `json:"vuelto_entregado"`
	// EsperadoEfectivo = fondo inicial + ventas en efectivo - vuelto entregado.
	EsperadoEfectivo decimal.Decimal  `json:"esperado_efectivo"`
	MontoContado     *decimal.Decimal `json:"monto_contado,omitempty"`
	// Diferencia: negativa = faltante, positiva = sobrante.
	Diferencia *decimal.Decimal `json:"diferencia,omitempty"`
	OpenedAt   string           `json:"opened_at"`
	ClosedAt   *string          `json:"closed_at,omitempty"`
}

type SesionCajaFilter struct {
	Estado string `form:"estado"` // abierta | cerrada | vacío = todas
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SesionCajaListResponse struct {
	Data  []ResumenCajaResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
