package service

import (
	"context"
	"time"

	"decoaromas/internal/apierror"
	"decoaromas/internal/dto"
	"decoaromas/internal/model"
	"decoaromas/internal/repository"
	"decoaromas/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type CajaService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.ResumenCajaResponse, error)
	Cerrar(ctx context.Context, req dto.CerrarCajaRequest) (*dto.ResumenCajaResponse, error)
	// Resumen recomputes the aggregation read-only, for an open or closed
	// session (mid-shift inspection without closing).
	Resumen(ctx context.Context, sesionID uuid.UUID) (*dto.ResumenCajaResponse, error)
	SesionActiva(ctx context.Context) (*dto.ResumenCajaResponse, error)
	Historial(ctx context.Context, filter dto.SesionCajaFilter) (*dto.SesionCajaListResponse, error)
}

type cajaService struct {
	repo       repository.CajaRepository
	dispatcher *worker.Dispatcher
}

func NewCajaService(repo repository.CajaRepository, dispatcher *worker.Dispatcher) CajaService {
	return &cajaService{repo: repo, dispatcher: dispatcher}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *cajaService) Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.ResumenCajaResponse, error) {
	// Guard: at most one open session, system-wide. Existence check before
	// insert, same read-then-write shape as the stock path.
	if existente, err := s.repo.FindSesionAbierta(ctx); err == nil && existente != nil {
		return nil, apierror.ReglaNegocio("ya existe una caja abierta")
	}

	if req.FondoInicial.IsNegative() {
		return nil, apierror.Validacion("el fondo inicial no puede ser negativo")
	}

	sesion := &model.SesionCaja{
		UsuarioID:    usuarioID,
		FondoInicial: req.FondoInicial,
		Estado:       model.SesionAbierta,
		OpenedAt:     time.Now(),
	}
	if err := s.repo.CreateSesion(ctx, sesion); err != nil {
		return nil, err
	}

	return s.buildResumen(ctx, sesion)
}

// ── Cerrar ────────────────────────────────────────────────────────────────────
// Aggregates all payments recorded against the session, grouped by method.
// esperadoEfectivo = fondo inicial + ventas en efectivo - vuelto entregado.
// diferencia = contado - esperado, snapped to 0 when |diferencia| < 0.01.

func (s *cajaService) Cerrar(ctx context.Context, req dto.CerrarCajaRequest) (*dto.ResumenCajaResponse, error) {
	if req.MontoContado == nil {
		return nil, apierror.ReglaNegocio("se requiere el monto de efectivo contado")
	}

	sesion, err := s.repo.FindSesionAbierta(ctx)
	if err != nil {
		return nil, apierror.ReglaNegocio("no hay una caja abierta")
	}

	totales, vuelto, err := s.agregarPagos(ctx, sesion.ID)
	if err != nil {
		return nil, err
	}

	esperado := sesion.FondoInicial.Add(totales.Efectivo).Sub(vuelto)
	diferencia := req.MontoContado.Sub(esperado)
	if diferencia.Abs().LessThan(centavo) {
		diferencia = decimal.Zero
	}

	now := time.Now()
	sesion.TotalEfectivo = &totales.Efectivo
	sesion.TotalTransferencia = &totales.Transferencia
	sesion.TotalTarjetaDebito = &totales.TarjetaDebito
	sesion.TotalTarjetaCredito = &totales.TarjetaCredito
	sesion.VueltoEntregado = &vuelto
	sesion.MontoEsperado = &esperado
	sesion.MontoContado = req.MontoContado
	sesion.Diferencia = &diferencia
	sesion.Estado = model.SesionCerrada
	sesion.ClosedAt = &now

	if err := s.repo.UpdateSesion(ctx, sesion); err != nil {
		return nil, err
	}

	// Async reconciliation report — best-effort, fire & forget.
	if s.dispatcher != nil {
		payload := map[string]interface{}{"sesion_id": sesion.ID.String()}
		if err := s.dispatcher.EncolarReporteCaja(ctx, payload); err != nil {
			log.Warn().Err(err).Msg("no se pudo encolar el reporte de caja")
		}
	}

	return s.buildResumen(ctx, sesion)
}

// ── Consultas ────────────────────────────────────────────────────────────────

func (s *cajaService) Resumen(ctx context.Context, sesionID uuid.UUID) (*dto.ResumenCajaResponse, error) {
	sesion, err := s.repo.FindSesionByID(ctx, sesionID)
	if err != nil {
		return nil, apierror.NoEncontrado("sesión de caja no encontrada")
	}
	return s.buildResumen(ctx, sesion)
}

func (s *cajaService) SesionActiva(ctx context.Context) (*dto.ResumenCajaResponse, error) {
	sesion, err := s.repo.FindSesionAbierta(ctx)
	if err != nil {
		return nil, apierror.ReglaNegocio("no hay una caja abierta")
	}
	return s.buildResumen(ctx, sesion)
}

func (s *cajaService) Historial(ctx context.Context, filter dto.SesionCajaFilter) (*dto.SesionCajaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sesiones, total, err := s.repo.ListSesiones(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ResumenCajaResponse, 0, len(sesiones))
	for i := range sesiones {
		r, err := s.buildResumen(ctx, &sesiones[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *r)
	}
	return &dto.SesionCajaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *cajaService) agregarPagos(ctx context.Context, sesionID uuid.UUID) (dto.MontosPorMetodo, decimal.Decimal, error) {
	sums, err := s.repo.SumPagosPorMetodo(ctx, sesionID)
	if err != nil {
		return dto.MontosPorMetodo{}, decimal.Zero, err
	}
	vuelto, err := s.repo.SumVuelto(ctx, sesionID)
	if err != nil {
		return dto.MontosPorMetodo{}, decimal.Zero, err
	}

	totales := dto.MontosPorMetodo{
		Efectivo:       sums[model.PagoEfectivo],
		Transferencia:  sums[model.PagoTransferencia],
		TarjetaDebito:  sums[model.PagoTarjetaDebito],
		TarjetaCredito: sums[model.PagoTarjetaCredito],
	}
	totales.Total = totales.Efectivo.Add(totales.Transferencia).
		Add(totales.TarjetaDebito).Add(totales.TarjetaCredito)
	return totales, vuelto, nil
}

func (s *cajaService) buildResumen(ctx context.Context, sesion *model.SesionCaja) (*dto.ResumenCajaResponse, error) {
	totales, vuelto, err := s.agregarPagos(ctx, sesion.ID)
	if err != nil {
		return nil, err
	}

	resumen := &dto.ResumenCajaResponse{
		SesionCajaID:     sesion.ID.String(),
		UsuarioID:        sesion.UsuarioID.String(),
		Estado:           sesion.Estado,
		FondoInicial:     sesion.FondoInicial,
		Totales:          totales,
		VueltoEntregado:  vuelto,
		EsperadoEfectivo: sesion.FondoInicial.Add(totales.Efectivo).Sub(vuelto),
		MontoContado:     sesion.MontoContado,
		Diferencia:       sesion.Diferencia,
		OpenedAt:         sesion.OpenedAt.Format("2006-01-02T15:04:05Z"),
	}
	if sesion.ClosedAt != nil {
		t := sesion.ClosedAt.Format("2006-01-02T15:04:05Z")
		resumen.ClosedAt = &t
	}
	return resumen, nil
}
