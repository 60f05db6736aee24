package service

import (
	"context"

	"decoaromas/internal/apierror"
	"decoaromas/internal/dto"
	"decoaromas/internal/model"
	"decoaromas/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventarioService owns all stock mutation and the append-only movement
// ledger. Every stock change produces exactly one MovimientoStock; reversals
// and corrections are new entries, never edits.
type InventarioService interface {
	// ValidarDisponibilidad is a pure read: fails on the first product whose
	// current stock cannot cover the requested quantity. No mutation.
	ValidarDisponibilidad(ctx context.Context, items []dto.ItemVentaRequest) error

	// DescontarPorVentaTx decrements stock inside a live sale transaction and
	// returns the unpersisted salida/venta movement for the caller to batch.
	DescontarPorVentaTx(tx *gorm.DB, p *model.Producto, cantidad int, usuarioID uuid.UUID) (*model.MovimientoStock, error)

	// RegistrarMovimientosTx persists pending movements in one round trip.
	RegistrarMovimientosTx(tx *gorm.DB, movs []*model.MovimientoStock) error

	// AjusteAbsoluto sets the stock to an absolute quantity, recording one
	// correction movement for the signed diff. No-op (no movement) when the
	// diff is zero.
	AjusteAbsoluto(ctx context.Context, productoID uuid.UUID, nuevoStock int, usuarioID uuid.UUID) (*model.Producto, error)

	// MovimientoManual applies an immediate entrada/salida with its movement.
	MovimientoManual(ctx context.Context, req dto.MovimientoManualRequest, usuarioID uuid.UUID) (*model.Producto, error)

	// RevertirVentaTx restores the quantity of one sale line with a
	// compensating entrada/reversion_venta movement. The original salida stays
	// untouched in the ledger.
	RevertirVentaTx(tx *gorm.DB, productoID uuid.UUID, cantidad int, usuarioID uuid.UUID, ventaID uuid.UUID) error

	ListarMovimientos(ctx context.Context, filter dto.MovimientoStockFilter) (*dto.MovimientoStockListResponse, error)
}

type inventarioService struct {
	productoRepo   repository.ProductoRepository
	movimientoRepo repository.MovimientoStockRepository
}

func NewInventarioService(productoRepo repository.ProductoRepository, movimientoRepo repository.MovimientoStockRepository) InventarioService {
	return &inventarioService{productoRepo: productoRepo, movimientoRepo: movimientoRepo}
}

// ── Validación ───────────────────────────────────────────────────────────────

func (s *inventarioService) ValidarDisponibilidad(ctx context.Context, items []dto.ItemVentaRequest) error {
	for _, item := range items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return apierror.Validacionf("producto_id inválido: %s", item.ProductoID)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return apierror.NoEncontrado("producto no encontrado: " + item.ProductoID)
		}
		if p.StockActual < item.Cantidad {
			return apierror.ReglaNegociof(
				"stock insuficiente para %s: disponible %d, solicitado %d",
				p.Nombre, p.StockActual, item.Cantidad,
			)
		}
	}
	return nil
}

// ── Venta ────────────────────────────────────────────────────────────────────

func (s *inventarioService) DescontarPorVentaTx(tx *gorm.DB, p *model.Producto, cantidad int, usuarioID uuid.UUID) (*model.MovimientoStock, error) {
	// Re-check inside the transaction: the pre-flight read and this write are
	// separate steps, two concurrent sales can both pass the pre-flight.
	if p.StockActual < cantidad {
		return nil, apierror.ReglaNegociof(
			"stock insuficiente para %s: disponible %d, solicitado %d",
			p.Nombre, p.StockActual, cantidad,
		)
	}

	if err := s.productoRepo.UpdateStockTx(tx, p.ID, -cantidad); err != nil {
		return nil, err
	}

	mov := &model.MovimientoStock{
		ProductoID:    p.ID,
		Direccion:     model.MovSalida,
		Motivo:        model.MotivoVenta,
		Cantidad:      cantidad,
		StockAnterior: p.StockActual,
		StockNuevo:    p.StockActual - cantidad,
		UsuarioID:     usuarioID,
	}
	p.StockActual -= cantidad
	return mov, nil
}

func (s *inventarioService) RegistrarMovimientosTx(tx *gorm.DB, movs []*model.MovimientoStock) error {
	return s.movimientoRepo.CreateBatchTx(tx, movs)
}

func (s *inventarioService) RevertirVentaTx(tx *gorm.DB, productoID uuid.UUID, cantidad int, usuarioID uuid.UUID, ventaID uuid.UUID) error {
	p, err := s.productoRepo.FindByIDTx(tx, productoID)
	if err != nil {
		return apierror.NoEncontrado("producto no encontrado")
	}
	if err := s.productoRepo.UpdateStockTx(tx, productoID, cantidad); err != nil {
		return err
	}
	ref := ventaID
	return s.movimientoRepo.CreateTx(tx, &model.MovimientoStock{
		ProductoID:    productoID,
		Direccion:     model.MovEntrada,
		Motivo:        model.MotivoReversionVenta,
		Cantidad:      cantidad,
		StockAnterior: p.StockActual,
		StockNuevo:    p.StockActual + cantidad,
		UsuarioID:     usuarioID,
		ReferenciaID:  &ref,
	})
}

// ── Ajustes manuales ─────────────────────────────────────────────────────────

func (s *inventarioService) AjusteAbsoluto(ctx context.Context, productoID uuid.UUID, nuevoStock int, usuarioID uuid.UUID) (*model.Producto, error) {
	p, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil {
		return nil, apierror.NoEncontrado("producto no encontrado")
	}

	diff := nuevoStock - p.StockActual
	if diff == 0 {
		return p, nil
	}

	direccion := model.MovEntrada
	cantidad := diff
	if diff < 0 {
		direccion = model.MovSalida
		cantidad = -diff
	}

	mov := &model.MovimientoStock{
		ProductoID:    p.ID,
		Direccion:     direccion,
		Motivo:        model.MotivoCorreccion,
		Cantidad:      cantidad,
		StockAnterior: p.StockActual,
		StockNuevo:    nuevoStock,
		UsuarioID:     usuarioID,
	}

	err = runTx(ctx, s.productoRepo.DB(), func(tx *gorm.DB) error {
		if err := s.productoRepo.UpdateStockTx(tx, p.ID, diff); err != nil {
			return err
		}
		return s.movimientoRepo.CreateTx(tx, mov)
	})
	if err != nil {
		return nil, err
	}

	p.StockActual = nuevoStock
	return p, nil
}

func (s *inventarioService) MovimientoManual(ctx context.Context, req dto.MovimientoManualRequest, usuarioID uuid.UUID) (*model.Producto, error) {
	pid, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, apierror.Validacion("producto_id inválido")
	}
	p, err := s.productoRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, apierror.NoEncontrado("producto no encontrado")
	}

	delta := req.Cantidad
	if req.Direccion == model.MovSalida {
		if req.Cantidad > p.StockActual {
			return nil, apierror.ReglaNegociof(
				"stock insuficiente para %s: disponible %d, solicitado %d",
				p.Nombre, p.StockActual, req.Cantidad,
			)
		}
		delta = -req.Cantidad
	}

	mov := &model.MovimientoStock{
		ProductoID:    p.ID,
		Direccion:     req.Direccion,
		Motivo:        req.Motivo,
		Cantidad:      req.Cantidad,
		StockAnterior: p.StockActual,
		StockNuevo:    p.StockActual + delta,
		UsuarioID:     usuarioID,
	}

	err = runTx(ctx, s.productoRepo.DB(), func(tx *gorm.DB) error {
		if err := s.productoRepo.UpdateStockTx(tx, p.ID, delta); err != nil {
			return err
		}
		return s.movimientoRepo.CreateTx(tx, mov)
	})
	if err != nil {
		return nil, err
	}

	p.StockActual += delta
	return p, nil
}

// ── Consultas ────────────────────────────────────────────────────────────────

func (s *inventarioService) ListarMovimientos(ctx context.Context, filter dto.MovimientoStockFilter) (*dto.MovimientoStockListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 500 {
		filter.Limit = 100
	}
	movs, total, err := s.movimientoRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovimientoStockResponse, 0, len(movs))
	for _, m := range movs {
		nombre := ""
		if m.Producto != nil {
			nombre = m.Producto.Nombre
		}
		items = append(items, dto.MovimientoStockResponse{
			ID:            m.ID.String(),
			ProductoID:    m.ProductoID.String(),
			Producto:      nombre,
			Direccion:     m.Direccion,
			Motivo:        m.Motivo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			UsuarioID:     m.UsuarioID.String(),
			CreatedAt:     m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return &dto.MovimientoStockListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}
