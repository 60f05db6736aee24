package model

import (
	"time"

	"github.com/google/uuid"
)

// Direccion of a stock movement.
const (
	MovEntrada = "entrada"
	MovSalida  = "salida"
)

// Motivo of a stock movement.
const (
	MotivoVenta          = "venta"
	MotivoProduccion     = "produccion"
	MotivoCorreccion     = "correccion"
	MotivoReversionVenta = "reversion_venta"
)

// MovimientoStock registra cada cambio de stock de un producto.
// The ledger is append-only and is the sole audit trail: movements are NEVER
// updated or deleted — reversals and corrections create new entries.
type MovimientoStock struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Direccion  string    `gorm:"type:varchar(10);not null"`
	Motivo     string    `gorm:"type:varchar(30);not null"`
	// Cantidad is always positive; Direccion carries the sign.
	Cantidad      int       `gorm:"not null"`
	StockAnterior int       `gorm:"not null"`
	StockNuevo    int       `gorm:"not null"`
	UsuarioID     uuid.UUID `gorm:"type:uuid;not null"`
	// ReferenciaID links to the originating Venta when Motivo is venta or
	// reversion_venta.
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// TableName overrides GORM's default pluralization.
func (MovimientoStock) TableName() string { return "movimientos_stock" }

// DireccionValida reports membership in the direction set.
func DireccionValida(d string) bool { return d == MovEntrada || d == MovSalida }
