package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is optional on a sale; the customer class on the sale request, not
// the customer record, decides the price list.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null;index"`
	Documento *string   `gorm:"uniqueIndex"`
	Email     *string
	Telefono  *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
