package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
	// Descuento por unidad: ambos campos nil = sin descuento.
	TipoDescuento  *string          `json:"tipo_descuento"  validate:"omitempty,oneof=porcentaje monto"`
	ValorDescuento *decimal.Decimal `json:"valor_descuento"`
}

type PagoRequest struct {
	Metodo string          `json:"metodo" validate:"required,oneof=efectivo transferencia tarjeta_debito tarjeta_credito"`
	Monto  decimal.Decimal `json:"monto"  validate:"required"`
}

type RegistrarVentaRequest struct {
	TipoCliente     string             `json:"tipo_cliente"     validate:"required,oneof=minorista mayorista"`
	TipoComprobante string             `json:"tipo_comprobante" validate:"required,oneof=boleta factura"`
	ClienteID       *string            `json:"cliente_id"       validate:"omitempty,uuid"`
	CotizacionID    *string            `json:"cotizacion_id"    validate:"omitempty,uuid"`
	Items           []ItemVentaRequest `json:"items"            validate:"required,min=1,dive"`
	Pagos           []PagoRequest      `json:"pagos"            validate:"required,min=1,dive"`
	// Descuento global, aplicado sobre el subtotal luego de descuentos por item.
	TipoDescuentoGlobal  *string          `json:"tipo_descuento_global"  validate:"omitempty,oneof=porcentaje monto"`
	ValorDescuentoGlobal *decimal.Decimal `json:"valor_descuento_global"`
}

type ActualizarComprobanteRequest struct {
	// Numero must match ^[BF]\d+$ after trim + uppercase; the letter must agree
	// with the sale's tipo_comprobante.
	Numero string `json:"numero" validate:"required,min=2"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

type VentaFilter struct {
	Fecha       string `form:"fecha"` // YYYY-MM-DD; empty = sin filtro
	TipoCliente string `form:"tipo_cliente"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	ProductoID        string          `json:"producto_id"`
	Producto          string          `json:"producto"`
	Cantidad          int             `json:"cantidad"`
	PrecioUnitario    decimal.Decimal `json:"precio_unitario"`
	DescuentoUnitario decimal.Decimal `json:"descuento_unitario"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Total             decimal.Decimal `json:"total"`
}

type VentaResponse struct {
	ID                string              `json:"id"`
	SesionCajaID      string              `json:"sesion_caja_id"`
	UsuarioID         string              `json:"usuario_id"`
	ClienteID         *string             `json:"cliente_id,omitempty"`
	TipoCliente       string              `json:"tipo_cliente"`
	TipoComprobante   string              `json:"tipo_comprobante"`
	NumeroComprobante *string             `json:"numero_comprobante,omitempty"`
	Items             []ItemVentaResponse `json:"items"`
	Pagos             []PagoRequest       `json:"pagos"`
	Subtotal          decimal.Decimal     `json:"subtotal"`
	DescuentoItems    decimal.Decimal     `json:"descuento_items"`
	DescuentoGlobal   decimal.Decimal     `json:"descuento_global"`
	Total             decimal.Decimal     `json:"total"`
	Vuelto            decimal.Decimal     `json:"vuelto"`
	CreatedAt         string              `json:"created_at"`
}
