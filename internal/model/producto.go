package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is the catalog entity. Every product carries both price lists;
// which one applies is decided per sale by the customer class.
// StockActual never goes negative — all mutation goes through InventarioService.
type Producto struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodigoBarras string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"index;not null"`
	Descripcion  *string
	Categoria    string `gorm:"not null;default:'general'"`
	// PrecioCosto may be absent for products loaded without cost data;
	// cost accumulators treat nil as zero.
	PrecioCosto     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	PrecioMinorista decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	PrecioMayorista decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	StockActual     int              `gorm:"not null;default:0"`
	StockMinimo     int              `gorm:"not null;default:5"`
	Activo          bool             `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
