package service

import (
	"context"
	"regexp"
	"strings"

	"decoaromas/internal/apierror"
	"decoaromas/internal/dto"
	"decoaromas/internal/model"
	"decoaromas/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	EliminarVenta(ctx context.Context, id uuid.UUID, usuarioID uuid.UUID) error
	ActualizarComprobante(ctx context.Context, id uuid.UUID, req dto.ActualizarComprobanteRequest) (*dto.VentaResponse, error)
	ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListarVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo           repository.VentaRepository
	inventario     InventarioService
	cajaRepo       repository.CajaRepository
	productoRepo   repository.ProductoRepository
	clienteRepo    repository.ClienteRepository
	usuarioRepo    repository.UsuarioRepository
	cotizacionRepo repository.CotizacionRepository
}

func NewVentaService(
	repo repository.VentaRepository,
	inventario InventarioService,
	cajaRepo repository.CajaRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	usuarioRepo repository.UsuarioRepository,
	cotizacionRepo repository.CotizacionRepository,
) VentaService {
	return &ventaService{
		repo:           repo,
		inventario:     inventario,
		cajaRepo:       cajaRepo,
		productoRepo:   productoRepo,
		clienteRepo:    clienteRepo,
		usuarioRepo:    usuarioRepo,
		cotizacionRepo: cotizacionRepo,
	}
}

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// One atomic unit of work:
//   1. Require the single open caja session
//   2. Pre-flight availability check over all lines (pure read, fail-fast)
//   3. Resolve operator (required) and cliente (optional)
//   4. Per line, in request order: price by customer class, unit discount,
//      accumulate gross / discount / cost
//   5. Global discount over the subtotal AFTER line discounts (sequential)
//   6. Total = ceil(gross - line discounts - global discount)
//   7. Reconcile pagos against the total, compute the cash vuelto
//   8. TX: decrement stock per line, create venta+items+pagos, batch-persist
//      the pending movements
//   9. Best-effort: mark the source cotizacion convertida

func (s *ventaService) RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	// 1. Single open session, system-wide
	sesion, err := s.cajaRepo.FindSesionAbierta(ctx)
	if err != nil {
		return nil, apierror.ReglaNegocio("no hay una caja abierta")
	}

	// 2. Pre-flight stock validation, no side effects yet
	if err := s.inventario.ValidarDisponibilidad(ctx, req.Items); err != nil {
		return nil, err
	}

	// 3. Resolve operator and optional cliente
	if _, err := s.usuarioRepo.FindByID(ctx, usuarioID); err != nil {
		return nil, apierror.NoEncontrado("usuario no encontrado")
	}
	var clienteID *uuid.UUID
	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, apierror.Validacion("cliente_id inválido")
		}
		if _, err := s.clienteRepo.FindByID(ctx, cid); err != nil {
			return nil, apierror.NoEncontrado("cliente no encontrado")
		}
		clienteID = &cid
	}

	// 4. Resolve products and compute per-line pricing, in request order
	type lineaResuelta struct {
		productoID        uuid.UUID
		nombre            string
		cantidad          int
		precioUnitario    decimal.Decimal
		tipoDescuento     *string
		valorDescuento    *decimal.Decimal
		descuentoUnitario decimal.Decimal
		subtotal          decimal.Decimal
		total             decimal.Decimal
	}

	var resueltas []lineaResuelta
	subtotal := decimal.Zero
	descuentoItems := decimal.Zero
	costoTotal := decimal.Zero

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, apierror.Validacionf("producto_id inválido: %s", item.ProductoID)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, apierror.NoEncontrado("producto no encontrado: " + item.ProductoID)
		}

		precio := PrecioUnitario(p, req.TipoCliente)
		descuento, err := MontoDescuento(precio, item.ValorDescuento, item.TipoDescuento)
		if err != nil {
			return nil, err
		}
		if err := ValidarDescuento(descuento, precio, p.Nombre); err != nil {
			return nil, err
		}

		cant := decimal.NewFromInt(int64(item.Cantidad))
		lineaSubtotal := precio.Mul(cant)
		lineaDescuento := descuento.Mul(cant)

		subtotal = subtotal.Add(lineaSubtotal)
		descuentoItems = descuentoItems.Add(lineaDescuento)
		if p.PrecioCosto != nil {
			costoTotal = costoTotal.Add(p.PrecioCosto.Mul(cant))
		}

		resueltas = append(resueltas, lineaResuelta{
			productoID:        pid,
			nombre:            p.Nombre,
			cantidad:          item.Cantidad,
			precioUnitario:    precio,
			tipoDescuento:     item.TipoDescuento,
			valorDescuento:    item.ValorDescuento,
			descuentoUnitario: descuento,
			subtotal:          lineaSubtotal,
			total:             lineaSubtotal.Sub(lineaDescuento),
		})
	}

	// 5. Sequential global discount: base is the subtotal AFTER line discounts
	base := subtotal.Sub(descuentoItems)
	descuentoGlobal, err := MontoDescuento(base, req.ValorDescuentoGlobal, req.TipoDescuentoGlobal)
	if err != nil {
		return nil, err
	}
	if err := ValidarDescuento(descuentoGlobal, base, "descuento global"); err != nil {
		return nil, err
	}

	// 6. Always rounds UP to the next whole unit — no fractional denomination.
	total := base.Sub(descuentoGlobal).Ceil()

	// 7. Pagos
	pagos, vuelto, err := ConciliarPagos(req.Pagos, total)
	if err != nil {
		return nil, err
	}

	var cotizacionID *uuid.UUID
	if req.CotizacionID != nil {
		qid, err := uuid.Parse(*req.CotizacionID)
		if err != nil {
			return nil, apierror.Validacion("cotizacion_id inválido")
		}
		cotizacionID = &qid
	}

	// 8. ACID transaction: stock decrements + venta + movimientos
	var venta model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		venta = model.Venta{
			SesionCajaID:         sesion.ID,
			UsuarioID:            usuarioID,
			ClienteID:            clienteID,
			CotizacionID:         cotizacionID,
			TipoCliente:          req.TipoCliente,
			TipoComprobante:      req.TipoComprobante,
			Subtotal:             subtotal,
			DescuentoItems:       descuentoItems,
			TipoDescuentoGlobal:  req.TipoDescuentoGlobal,
			ValorDescuentoGlobal: req.ValorDescuentoGlobal,
			DescuentoGlobal:      descuentoGlobal,
			Total:                total,
			CostoTotal:           costoTotal,
			Vuelto:               vuelto,
			Pagos:                pagos,
		}
		for _, r := range resueltas {
			venta.Items = append(venta.Items, model.VentaItem{
				ProductoID:        r.productoID,
				Cantidad:          r.cantidad,
				PrecioUnitario:    r.precioUnitario,
				TipoDescuento:     r.tipoDescuento,
				ValorDescuento:    r.valorDescuento,
				DescuentoUnitario: r.descuentoUnitario,
				Subtotal:          r.subtotal,
				Total:             r.total,
			})
		}

		// Decrement stock with fresh reads inside the tx; collect the pending
		// movements and persist them in one batch alongside the sale.
		var pendientes []*model.MovimientoStock
		for _, r := range resueltas {
			p, err := s.productoRepo.FindByIDTx(tx, r.productoID)
			if err != nil {
				return apierror.NoEncontrado("producto no encontrado: " + r.productoID.String())
			}
			mov, err := s.inventario.DescontarPorVentaTx(tx, p, r.cantidad, usuarioID)
			if err != nil {
				return err
			}
			pendientes = append(pendientes, mov)
		}

		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return err
		}

		for _, mov := range pendientes {
			ref := venta.ID
			mov.ReferenciaID = &ref
		}
		return s.inventario.RegistrarMovimientosTx(tx, pendientes)
	})
	if txErr != nil {
		return nil, txErr
	}

	// 9. Best-effort cotizacion conversion — must never fail the sale.
	if cotizacionID != nil {
		if err := s.cotizacionRepo.UpdateEstado(ctx, *cotizacionID, model.CotizacionConvertida); err != nil {
			log.Warn().Err(err).Str("cotizacion_id", cotizacionID.String()).
				Msg("no se pudo marcar la cotizacion como convertida")
		}
	}

	resp := ventaToResponse(&venta)
	for i, r := range resueltas {
		resp.Items[i].Producto = r.nombre
	}
	return resp, nil
}

// ── EliminarVenta ─────────────────────────────────────────────────────────────
// Hard delete with compensating stock restoration: one entrada/reversion_venta
// movement per line, then the header (items/pagos cascade). The original
// salida movements stay in the ledger — history is never rewritten.

func (s *ventaService) EliminarVenta(ctx context.Context, id uuid.UUID, usuarioID uuid.UUID) error {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NoEncontrado("venta no encontrada")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, item := range venta.Items {
			if err := s.inventario.RevertirVentaTx(tx, item.ProductoID, item.Cantidad, usuarioID, venta.ID); err != nil {
				return err
			}
		}
		return s.repo.DeleteTx(tx, id)
	})
}

// ── ActualizarComprobante ─────────────────────────────────────────────────────

var numeroComprobanteRE = regexp.MustCompile(`^[BF]\d+$`)

func (s *ventaService) ActualizarComprobante(ctx context.Context, id uuid.UUID, req dto.ActualizarComprobanteRequest) (*dto.VentaResponse, error) {
	numero := strings.ToUpper(strings.TrimSpace(req.Numero))
	if !numeroComprobanteRE.MatchString(numero) {
		return nil, apierror.Validacion("numero de comprobante inválido: debe ser B o F seguido de dígitos")
	}

	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("venta no encontrada")
	}

	switch venta.TipoComprobante {
	case model.ComprobanteBoleta:
		if numero[0] != 'B' {
			return nil, apierror.Validacion("una boleta debe numerarse con B")
		}
	case model.ComprobanteFactura:
		if numero[0] != 'F' {
			return nil, apierror.Validacion("una factura debe numerarse con F")
		}
	}

	if existente, err := s.repo.FindByNumeroComprobante(ctx, numero); err == nil && existente.ID != venta.ID {
		return nil, apierror.Conflicto("el numero de comprobante ya está en uso")
	}

	venta.NumeroComprobante = &numero
	if err := s.repo.Update(ctx, venta); err != nil {
		return nil, err
	}
	return ventaToResponse(venta), nil
}

// ── Consultas ────────────────────────────────────────────────────────────────

func (s *ventaService) ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("venta no encontrada")
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) ListarVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for _, v := range ventas {
		items = append(items, *ventaToResponse(&v))
	}
	return &dto.VentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, item := range v.Items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		items = append(items, dto.ItemVentaResponse{
			ProductoID:        item.ProductoID.String(),
			Producto:          nombre,
			Cantidad:          item.Cantidad,
			PrecioUnitario:    item.PrecioUnitario,
			DescuentoUnitario: item.DescuentoUnitario,
			Subtotal:          item.Subtotal,
			Total:             item.Total,
		})
	}
	pagos := make([]dto.PagoRequest, 0, len(v.Pagos))
	for _, p := range v.Pagos {
		pagos = append(pagos, dto.PagoRequest{Metodo: p.Metodo, Monto: p.Monto})
	}
	var clienteID *string
	if v.ClienteID != nil {
		s := v.ClienteID.String()
		clienteID = &s
	}
	return &dto.VentaResponse{
		ID:                v.ID.String(),
		SesionCajaID:      v.SesionCajaID.String(),
		UsuarioID:         v.UsuarioID.String(),
		ClienteID:         clienteID,
		TipoCliente:       v.TipoCliente,
		TipoComprobante:   v.TipoComprobante,
		NumeroComprobante: v.NumeroComprobante,
		Items:             items,
		Pagos:             pagos,
		Subtotal:          v.Subtotal,
		DescuentoItems:    v.DescuentoItems,
		DescuentoGlobal:   v.DescuentoGlobal,
		Total:             v.Total,
		Vuelto:            v.Vuelto,
		CreatedAt:         v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
