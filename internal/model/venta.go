package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TipoCliente decides which price list applies to a sale.
const (
	ClienteMinorista = "minorista"
	ClienteMayorista = "mayorista"
)

// TipoComprobante: boleta numbers start with B, facturas with F.
const (
	ComprobanteBoleta  = "boleta"
	ComprobanteFactura = "factura"
)

// MetodoPago is a closed enumeration; "efectivo" is the only method the
// drawer can physically return change from.
const (
	PagoEfectivo       = "efectivo"
	PagoTransferencia  = "transferencia"
	PagoTarjetaDebito  = "tarjeta_debito"
	PagoTarjetaCredito = "tarjeta_credito"
)

// TipoDescuento: porcentaje (0–100 over the base) or monto (fixed amount).
const (
	DescuentoPorcentaje = "porcentaje"
	DescuentoMonto      = "monto"
)

// Venta is created atomically with its items and pagos, and hard-deleted with
// compensating stock movements (no soft delete).
// Total is the net payable amount, always rounded UP to the whole currency
// unit — the currency has no fractional denomination.
type Venta struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SesionCajaID uuid.UUID  `gorm:"type:uuid;not null;index"`
	UsuarioID    uuid.UUID  `gorm:"type:uuid;not null"`
	ClienteID    *uuid.UUID `gorm:"type:uuid;index"`
	CotizacionID *uuid.UUID `gorm:"type:uuid"`

	TipoCliente       string  `gorm:"type:varchar(20);not null"`
	TipoComprobante   string  `gorm:"type:varchar(20);not null"`
	NumeroComprobante *string `gorm:"uniqueIndex"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"` // gross, before any discount
	DescuentoItems decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Descuento global: computed sequentially over Subtotal - DescuentoItems.
	TipoDescuentoGlobal  *string          `gorm:"type:varchar(20)"`
	ValorDescuentoGlobal *decimal.Decimal `gorm:"type:decimal(12,2)"`
	DescuentoGlobal      decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Total                decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	CostoTotal           decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Vuelto               decimal.Decimal  `gorm:"type:decimal(12,2);not null"`

	CreatedAt time.Time

	Items   []VentaItem `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
	Pagos   []VentaPago `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
	Usuario *Usuario    `gorm:"foreignKey:UsuarioID"`
	Cliente *Cliente    `gorm:"foreignKey:ClienteID"`
}

// VentaItem snapshots the unit price at sale time. Immutable after creation.
type VentaItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Cantidad   int       `gorm:"not null"`

	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TipoDescuento  *string         `gorm:"type:varchar(20)"`
	ValorDescuento *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// DescuentoUnitario is the computed per-unit discount amount.
	DescuentoUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal          decimal.Decimal `gorm:"type:decimal(12,2);not null"` // precio * cantidad
	Total             decimal.Decimal `gorm:"type:decimal(12,2);not null"` // subtotal - descuento*cantidad

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// VentaPago is one tender of a (possibly split) payment. Immutable, owned by
// exactly one Venta.
type VentaPago struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Metodo  string          `gorm:"type:varchar(20);not null"`
	Monto   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// MetodoPagoValido reports membership in the closed payment-method set.
func MetodoPagoValido(m string) bool {
	switch m {
	case PagoEfectivo, PagoTransferencia, PagoTarjetaDebito, PagoTarjetaCredito:
		return true
	}
	return false
}
