package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estado of a SesionCaja.
const (
	SesionAbierta = "abierta"
	SesionCerrada = "cerrada"
)

// SesionCaja is one cash-drawer shift. At most one session is "abierta" at any
// instant, system-wide. Closing is terminal and records the reconciliation of
// expected vs. physically counted cash.
type SesionCaja struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID    uuid.UUID       `gorm:"type:uuid;not null"`
	FondoInicial decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado       string          `gorm:"type:varchar(20);not null;default:'abierta';index"`

	// Theoretical per-method totals, snapshotted at close.
	TotalEfectivo       *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalTransferencia  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalTarjetaDebito  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalTarjetaCredito *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// VueltoEntregado: all change disbursed during the session, always cash.
	VueltoEntregado *decimal.Decimal `gorm:"type:decimal(12,2)"`

	MontoEsperado *decimal.Decimal `gorm:"type:decimal(12,2)"`
	MontoContado  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// Diferencia: negative = faltante (shortage), positive = sobrante.
	// Snapped to exactly 0 when |diferencia| < 0.01.
	Diferencia *decimal.Decimal `gorm:"type:decimal(12,2)"`

	OpenedAt time.Time
	ClosedAt *time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

// TableName overrides GORM's default pluralization.
func (SesionCaja) TableName() string { return "sesiones_caja" }
