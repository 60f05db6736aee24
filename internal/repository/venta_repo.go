package repository

import (
	"context"

	"decoaromas/internal/dto"
	"decoaromas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	FindByNumeroComprobante(ctx context.Context, numero string) (*model.Venta, error)
	Update(ctx context.Context, v *model.Venta) error
	// DeleteTx hard-deletes the sale header; items and pagos cascade with it.
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Preload("Items.Producto").Preload("Pagos").First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) FindByNumeroComprobante(ctx context.Context, numero string) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Where("numero_comprobante = ?", numero).First(&v).Error
	return &v, err
}

func (r *ventaRepo) Update(ctx context.Context, v *model.Venta) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *ventaRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	// Cascade on items/pagos is declared in the model constraints.
	return tx.Select("Items", "Pagos").Delete(&model.Venta{ID: id}).Error
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Venta{})

	if filter.Fecha != "" {
		q = q.Where("DATE(created_at) = ?", filter.Fecha)
	}
	if filter.TipoCliente != "" {
		q = q.Where("tipo_cliente = ?", filter.TipoCliente)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items.Producto").Preload("Pagos").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error

	return ventas, total, err
}
