package service_test

// In-memory repository stubs shared by the service unit tests. Each stub keeps
// state in plain maps/slices so tests can assert side effects (or, just as
// important, their absence) without a database. Transaction-scoped methods
// receive tx == nil because runTx short-circuits when no DB is wired.

import (
	"context"
	"errors"
	"time"

	"decoaromas/internal/dto"
	"decoaromas/internal/model"
	"decoaromas/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errNotFound = errors.New("record not found")

// ── ProductoRepository stub ──────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) add(p *model.Producto) *model.Producto {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Activo = true
	r.productos[p.ID] = p
	return p
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.add(p)
	return nil
}

// stock reads the persisted stock, for side-effect assertions.
func (r *stubProductoRepo) stock(id uuid.UUID) int { return r.productos[id].StockActual }

// Find methods return copies, like a real query does: mutations on the
// returned struct never touch the stored row until an explicit write.
func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, errNotFound
	}
	c := *p
	return &c, nil
}

func (r *stubProductoRepo) FindByBarcode(_ context.Context, barcode string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.CodigoBarras == barcode && p.Activo {
			c := *p
			return &c, nil
		}
	}
	return nil, errNotFound
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return errNotFound
	}
	p.Activo = false
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return errNotFound
	}
	p.Activo = true
	return nil
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductoRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return errNotFound
	}
	p.StockActual += delta
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── MovimientoStockRepository stub ───────────────────────────────────────────

type stubMovimientoRepo struct {
	movimientos []*model.MovimientoStock
}

func newStubMovimientoRepo() *stubMovimientoRepo { return &stubMovimientoRepo{} }

func (r *stubMovimientoRepo) Create(_ context.Context, m *model.MovimientoStock) error {
	return r.CreateTx(nil, m)
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, m)
	return nil
}

func (r *stubMovimientoRepo) CreateBatchTx(tx *gorm.DB, movs []*model.MovimientoStock) error {
	for _, m := range movs {
		if err := r.CreateTx(tx, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubMovimientoRepo) List(_ context.Context, _ dto.MovimientoStockFilter) ([]model.MovimientoStock, int64, error) {
	out := make([]model.MovimientoStock, 0, len(r.movimientos))
	for _, m := range r.movimientos {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

// porMotivo filters the recorded movements for assertions.
func (r *stubMovimientoRepo) porMotivo(motivo string) []*model.MovimientoStock {
	var out []*model.MovimientoStock
	for _, m := range r.movimientos {
		if m.Motivo == motivo {
			out = append(out, m)
		}
	}
	return out
}

var _ repository.MovimientoStockRepository = (*stubMovimientoRepo)(nil)

// ── VentaRepository stub ─────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, errNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) FindByNumeroComprobante(_ context.Context, numero string) (*model.Venta, error) {
	for _, v := range r.ventas {
		if v.NumeroComprobante != nil && *v.NumeroComprobante == numero {
			return v, nil
		}
	}
	return nil, errNotFound
}

func (r *stubVentaRepo) Update(_ context.Context, v *model.Venta) error {
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	if _, ok := r.ventas[id]; !ok {
		return errNotFound
	}
	delete(r.ventas, id)
	return nil
}

func (r *stubVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	out := make([]model.Venta, 0, len(r.ventas))
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── CajaRepository stub ──────────────────────────────────────────────────────

type stubCajaRepo struct {
	sesiones map[uuid.UUID]*model.SesionCaja
	// pagosPorMetodo / vuelto simulate the SQL aggregation over the session.
	pagosPorMetodo map[uuid.UUID]map[string]decimal.Decimal
	vuelto         map[uuid.UUID]decimal.Decimal
}

func newStubCajaRepo() *stubCajaRepo {
	return &stubCajaRepo{
		sesiones:       make(map[uuid.UUID]*model.SesionCaja),
		pagosPorMetodo: make(map[uuid.UUID]map[string]decimal.Decimal),
		vuelto:         make(map[uuid.UUID]decimal.Decimal),
	}
}

func (r *stubCajaRepo) registrarPago(sesionID uuid.UUID, metodo string, monto decimal.Decimal) {
	sums, ok := r.pagosPorMetodo[sesionID]
	if !ok {
		sums = make(map[string]decimal.Decimal)
		r.pagosPorMetodo[sesionID] = sums
	}
	sums[metodo] = sums[metodo].Add(monto)
}

func (r *stubCajaRepo) registrarVuelto(sesionID uuid.UUID, monto decimal.Decimal) {
	r.vuelto[sesionID] = r.vuelto[sesionID].Add(monto)
}

func (r *stubCajaRepo) CreateSesion(_ context.Context, s *model.SesionCaja) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sesiones[s.ID] = s
	return nil
}

func (r *stubCajaRepo) FindSesionAbierta(_ context.Context) (*model.SesionCaja, error) {
	for _, s := range r.sesiones {
		if s.Estado == model.SesionAbierta {
			return s, nil
		}
	}
	return nil, errNotFound
}

func (r *stubCajaRepo) FindSesionByID(_ context.Context, id uuid.UUID) (*model.SesionCaja, error) {
	s, ok := r.sesiones[id]
	if !ok {
		return nil, errNotFound
	}
	return s, nil
}

func (r *stubCajaRepo) UpdateSesion(_ context.Context, s *model.SesionCaja) error {
	r.sesiones[s.ID] = s
	return nil
}

func (r *stubCajaRepo) ListSesiones(_ context.Context, filter dto.SesionCajaFilter) ([]model.SesionCaja, int64, error) {
	var out []model.SesionCaja
	for _, s := range r.sesiones {
		if filter.Estado != "" && s.Estado != filter.Estado {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubCajaRepo) SumPagosPorMetodo(_ context.Context, sesionID uuid.UUID) (map[string]decimal.Decimal, error) {
	sums, ok := r.pagosPorMetodo[sesionID]
	if !ok {
		return map[string]decimal.Decimal{}, nil
	}
	return sums, nil
}

func (r *stubCajaRepo) SumVuelto(_ context.Context, sesionID uuid.UUID) (decimal.Decimal, error) {
	return r.vuelto[sesionID], nil
}

var _ repository.CajaRepository = (*stubCajaRepo)(nil)

// ── UsuarioRepository stub ───────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) add(u *model.Usuario) *model.Usuario {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Activo = true
	r.usuarios[u.ID] = u
	return u
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.add(u)
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if !incluirInactivos && !u.Activo {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SetActivo(_ context.Context, id uuid.UUID, activo bool) error {
	u, ok := r.usuarios[id]
	if !ok {
		return errNotFound
	}
	u.Activo = activo
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── ClienteRepository stub ───────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) add(c *model.Cliente) *model.Cliente {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Activo = true
	r.clientes[c.ID] = c
	return c
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	r.add(c)
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) FindByDocumento(_ context.Context, documento string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.Documento != nil && *c.Documento == documento {
			return c, nil
		}
	}
	return nil, errNotFound
}

func (r *stubClienteRepo) List(_ context.Context, _ dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	c, ok := r.clientes[id]
	if !ok {
		return errNotFound
	}
	c.Activo = false
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── CotizacionRepository stub ────────────────────────────────────────────────

type stubCotizacionRepo struct {
	cotizaciones map[uuid.UUID]*model.Cotizacion
}

func newStubCotizacionRepo() *stubCotizacionRepo {
	return &stubCotizacionRepo{cotizaciones: make(map[uuid.UUID]*model.Cotizacion)}
}

func (r *stubCotizacionRepo) Create(_ context.Context, c *model.Cotizacion) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.cotizaciones[c.ID] = c
	return nil
}

func (r *stubCotizacionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	c, ok := r.cotizaciones[id]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

func (r *stubCotizacionRepo) List(_ context.Context, estado string) ([]model.Cotizacion, error) {
	var out []model.Cotizacion
	for _, c := range r.cotizaciones {
		if estado != "" && c.Estado != estado {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCotizacionRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	c, ok := r.cotizaciones[id]
	if !ok {
		return errNotFound
	}
	c.Estado = estado
	return nil
}

var _ repository.CotizacionRepository = (*stubCotizacionRepo)(nil)
