package repository

import (
	"context"

	"decoaromas/internal/dto"
	"decoaromas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CajaRepository interface {
	CreateSesion(ctx context.Context, s *model.SesionCaja) error
	// FindSesionAbierta returns the single system-wide open session, or an
	// error when none is open.
	FindSesionAbierta(ctx context.Context) (*model.SesionCaja, error)
	FindSesionByID(ctx context.Context, id uuid.UUID) (*model.SesionCaja, error)
	UpdateSesion(ctx context.Context, s *model.SesionCaja) error
	ListSesiones(ctx context.Context, filter dto.SesionCajaFilter) ([]model.SesionCaja, int64, error)

	// SumPagosPorMetodo aggregates, over all payments of the session's sales,
	// totals grouped by payment method.
	SumPagosPorMetodo(ctx context.Context, sesionID uuid.UUID) (map[string]decimal.Decimal, error)
	// SumVuelto totals the change disbursed across the session's sales.
	SumVuelto(ctx context.Context, sesionID uuid.UUID) (decimal.Decimal, error)
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) CreateSesion(ctx context.Context, s *model.SesionCaja) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *cajaRepo) FindSesionAbierta(ctx context.Context) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := r.db.WithContext(ctx).Where("estado = ?", model.SesionAbierta).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cajaRepo) FindSesionByID(ctx context.Context, id uuid.UUID) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *cajaRepo) UpdateSesion(ctx context.Context, s *model.SesionCaja) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *cajaRepo) ListSesiones(ctx context.Context, filter dto.SesionCajaFilter) ([]model.SesionCaja, int64, error) {
	var sesiones []model.SesionCaja
	var total int64

	q := r.db.WithContext(ctx).Model(&model.SesionCaja{})
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("opened_at DESC").Offset(offset).Limit(filter.Limit).Find(&sesiones).Error
	return sesiones, total, err
}

func (r *cajaRepo) SumPagosPorMetodo(ctx context.Context, sesionID uuid.UUID) (map[string]decimal.Decimal, error) {
	type fila struct {
		Metodo string
		Total  decimal.Decimal
	}
	var filas []fila
	err := r.db.WithContext(ctx).
		Table("venta_pagos").
		Select("venta_pagos.metodo AS metodo, COALESCE(SUM(venta_pagos.monto), 0) AS total").
		Joins("JOIN ventas ON ventas.id = venta_pagos.venta_id").
		Where("ventas.sesion_caja_id = ?", sesionID).
		Group("venta_pagos.metodo").
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal, len(filas))
	for _, f := range filas {
		sums[f.Metodo] = f.Total
	}
	return sums, nil
}

func (r *cajaRepo) SumVuelto(ctx context.Context, sesionID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&model.Venta{}).
		Select("COALESCE(SUM(vuelto), 0)").
		Where("sesion_caja_id = ?", sesionID).
		Scan(&total).Error
	return total, err
}
