package repository

import (
	"context"

	"decoaromas/internal/dto"
	"decoaromas/internal/model"

	"gorm.io/gorm"
)

// MovimientoStockRepository is create + query only. The ledger is append-only:
// no Update, no Delete, ever.
type MovimientoStockRepository interface {
	Create(ctx context.Context, m *model.MovimientoStock) error
	CreateTx(tx *gorm.DB, m *model.MovimientoStock) error
	// CreateBatchTx persists pending movements in one round trip; used by the
	// sale transaction to defer movement writes until commit.
	CreateBatchTx(tx *gorm.DB, movs []*model.MovimientoStock) error
	List(ctx context.Context, filter dto.MovimientoStockFilter) ([]model.MovimientoStock, int64, error)
}

type movimientoStockRepo struct{ db *gorm.DB }

func NewMovimientoStockRepository(db *gorm.DB) MovimientoStockRepository {
	return &movimientoStockRepo{db: db}
}

func (r *movimientoStockRepo) Create(ctx context.Context, m *model.MovimientoStock) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *movimientoStockRepo) CreateTx(tx *gorm.DB, m *model.MovimientoStock) error {
	return tx.Create(m).Error
}

func (r *movimientoStockRepo) CreateBatchTx(tx *gorm.DB, movs []*model.MovimientoStock) error {
	if len(movs) == 0 {
		return nil
	}
	return tx.Create(movs).Error
}

func (r *movimientoStockRepo) List(ctx context.Context, filter dto.MovimientoStockFilter) ([]model.MovimientoStock, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.MovimientoStock{}).Preload("Producto")

	if filter.ProductoID != "" {
		q = q.Where("producto_id = ?", filter.ProductoID)
	}
	if filter.Motivo != "" {
		q = q.Where("motivo = ?", filter.Motivo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var movimientos []model.MovimientoStock
	err := q.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&movimientos).Error
	return movimientos, total, err
}
