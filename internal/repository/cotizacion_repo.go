package repository

import (
	"context"

	"decoaromas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CotizacionRepository interface {
	Create(ctx context.Context, c *model.Cotizacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error)
	List(ctx context.Context, estado string) ([]model.Cotizacion, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error
}

type cotizacionRepo struct{ db *gorm.DB }

func NewCotizacionRepository(db *gorm.DB) CotizacionRepository { return &cotizacionRepo{db: db} }

func (r *cotizacionRepo) Create(ctx context.Context, c *model.Cotizacion) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cotizacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	var c model.Cotizacion
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *cotizacionRepo) List(ctx context.Context, estado string) ([]model.Cotizacion, error) {
	var cotizaciones []model.Cotizacion
	q := r.db.WithContext(ctx)
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	err := q.Order("created_at DESC").Find(&cotizaciones).Error
	return cotizaciones, err
}

func (r *cotizacionRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Cotizacion{}).Where("id = ?", id).Update("estado", estado).Error
}
