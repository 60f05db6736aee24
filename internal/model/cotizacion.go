package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estado of a Cotizacion.
const (
	CotizacionPendiente  = "pendiente"
	CotizacionConvertida = "convertida"
)

// Cotizacion is a quote that may later be converted into a sale. Conversion
// marking is best-effort: a sale never fails because its quote disappeared.
type Cotizacion struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID *uuid.UUID      `gorm:"type:uuid;index"`
	Estado    string          `gorm:"type:varchar(20);not null;default:'pendiente'"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}

// TableName overrides GORM's default pluralization.
func (Cotizacion) TableName() string { return "cotizaciones" }
