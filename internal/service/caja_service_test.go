package service_test

import (
	"context"
	"testing"

	"decoaromas/internal/apierror"
	"decoaromas/internal/dto"
	"decoaromas/internal/model"
	"decoaromas/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cajaFixture struct {
	svc       service.CajaService
	repo      *stubCajaRepo
	usuarioID uuid.UUID
}

func newCajaFixture() *cajaFixture {
	repo := newStubCajaRepo()
	return &cajaFixture{
		// nil dispatcher: no async report in unit tests
		svc:       service.NewCajaService(repo, nil),
		repo:      repo,
		usuarioID: uuid.New(),
	}
}

func TestAbrirCaja(t *testing.T) {
	f := newCajaFixture()

	resumen, err := f.svc.Abrir(context.Background(), f.usuarioID, dto.AbrirCajaRequest{
		FondoInicial: dec("50000"),
	})
	require.NoError(t, err)

	assert.Equal(t, model.SesionAbierta, resumen.Estado)
	assert.Equal(t, f.usuarioID.String(), resumen.UsuarioID)
	assert.True(t, dec("50000").Equal(resumen.FondoInicial))
	// Nothing sold yet: esperado = fondo inicial
	assert.True(t, dec("50000").Equal(resumen.EsperadoEfectivo))
	assert.Nil(t, resumen.MontoContado)
	assert.Nil(t, resumen.ClosedAt)
}

func TestAbrirCajaFondoCero(t *testing.T) {
	f := newCajaFixture()
	_, err := f.svc.Abrir(context.Background(), f.usuarioID, dto.AbrirCajaRequest{FondoInicial: decimal.Zero})
	assert.NoError(t, err)
}

func TestAbrirCajaFondoNegativo(t *testing.T) {
	f := newCajaFixture()
	_, err := f.svc.Abrir(context.Background(), f.usuarioID, dto.AbrirCajaRequest{FondoInicial: dec("-1")})
	assert.True(t, apierror.Is(err, apierror.KindValidacion))
}

func TestAbrirCajaYaAbierta(t *testing.T) {
	f := newCajaFixture()
	_, err := f.svc.Abrir(context.Background(), f.usuarioID, dto.AbrirCajaRequest{FondoInicial: dec("1000")})
	require.NoError(t, err)

	_, err = f.svc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{FondoInicial: dec("2000")})
	assert.True(t, apierror.Is(err, apierror.KindReglaNegocio))
}

func TestAbrirCajaLuegoDeCerrar(t *testing.T) {
	f := newCajaFixture()
	_, err := f.svc.Abrir(context.Background(), f.usuarioID, dto.AbrirCajaRequest{FondoInicial: dec("1000")})
	require.NoError(t, err)
	_, err = f.svc.Cerrar(context.Background(), dto.CerrarCajaRequest{MontoContado: decPtr("1000")})
	require.NoError(t, err)

	// Closing is terminal, a new shift can start
	_, err = f.svc.Abrir(context.Background(), f.usuarioID, dto.AbrirCajaRequest{FondoInicial: dec("500")})
	assert.NoError(t, err)
}

// ── Cerrar ───────────────────────────────────────────────────────────────────

func TestCerrarCajaSinMontoContado(t *testing.T) {
	f := newCajaFixture()
	_, err := f.svc.Abrir(context.Background(), f.usuarioID, dto.AbrirCajaRequest{FondoInicial: dec("1000")})
	require.NoError(t, err)

	_, err = f.svc.Cerrar(context.Background(), dto.CerrarCajaRequest{})
	assert.True(t, apierror.Is(err, apierror.KindReglaNegocio))
}

func TestCerrarCajaSinSesionAbierta(t *testing.T) {
	f := newCajaFixture()
	_, err := f.svc.Cerrar(context.Background(), dto.CerrarCajaRequest{MontoContado: decPtr("100")})
	assert.True(t, apierror.Is(err, apierror.KindReglaNegocio))
}

func TestCerrarCajaConciliacion(t *testing.T) {
	// fondo 50000, cash sales 120000, change disbursed 5000:
	// esperado = 50000 + 120000 - 5000 = 165000; contado 164990 → faltante de 10.
	f := newCajaFixture()
	resumen, err := f.svc.Abrir(context.Background(), f.usuarioID, dto.AbrirCajaRequest{FondoInicial: dec("50000")})
	require.NoError(t, err)
	sesionID := uuid.MustParse(resumen.SesionCajaID)

	f.repo.registrarPago(sesionID, model.PagoEfectivo, dec("120000"))
	f.repo.registrarPago(sesionID, model.PagoTransferencia, dec("30000"))
	f.repo.registrarPago(sesionID, model.PagoTarjetaDebito, dec("15000"))
	f.repo.registrarVuelto(sesionID, dec("5000"))

	cierre, err := f.svc.Cerrar(context.Background(), dto.CerrarCajaRequest{MontoContado: decPtr("164990")})
	require.NoError(t, err)

	assert.Equal(t, model.SesionCerrada, cierre.Estado)
	assert.True(t, dec("120000").Equal(cierre.Totales.Efectivo))
	assert.True(t, dec("30000").Equal(cierre.Totales.Transferencia))
	assert.True(t, dec("15000").Equal(cierre.Totales.TarjetaDebito))
	assert.True(t, cierre.Totales.TarjetaCredito.IsZero())
	assert.True(t, dec("165000").Equal(cierre.Totales.Total))
	assert.True(t, dec("5000").Equal(cierre.VueltoEntregado))
	assert.True(t, dec("165000").Equal(cierre.EsperadoEfectivo))
	require.NotNil(t, cierre.Diferencia)
	assert.True(t, dec("-10").Equal(*cierre.Diferencia), "diferencia = %s", cierre.Diferencia)
	require.NotNil(t, cierre.ClosedAt)

	// Per-method totals snapshotted on the session row
	sesion, err := f.repo.FindSesionByID(context.Background(), sesionID)
	require.NoError(t, err)
	require.NotNil(t, sesion.TotalEfectivo)
	assert.True(t, dec("120000").Equal(*sesion.TotalEfectivo))
	require.NotNil(t, sesion.MontoEsperado)
	assert.True(t, dec("165000").Equal(*sesion.MontoEsperado))
}

func TestCerrarCajaSobrante(t *testing.T) {
	f := newCajaFixture()
	resumen, err := f.svc.Abrir(context.Background(), f.usuarioID, dto.AbrirCajaRequest{FondoInicial: dec("10000")})
	require.NoError(t, err)
	f.repo.registrarPago(uuid.MustParse(resumen.SesionCajaID), model.PagoEfectivo, dec("5000"))

	cierre, err := f.svc.Cerrar(context.Background(), dto.CerrarCajaRequest{MontoContado: decPtr("15100")})
	require.NoError(t, err)
	require.NotNil(t, cierre.Diferencia)
	assert.True(t, dec("100").Equal(*cierre.Diferencia))
}

func TestCerrarCajaDiferenciaDespreciable(t *testing.T) {
	// |contado - esperado| below a cent collapses to exactly zero
	f := newCajaFixture()
	_, err := f.svc.Abrir(context.Background(), f.usuarioID, dto.AbrirCajaRequest{FondoInicial: dec("1000")})
	require.NoError(t, err)

	cierre, err := f.svc.Cerrar(context.Background(), dto.CerrarCajaRequest{MontoContado: decPtr("1000.005")})
	require.NoError(t, err)
	require.NotNil(t, cierre.Diferencia)
	assert.True(t, cierre.Diferencia.IsZero())
}

func TestCerrarCajaDiferenciaDeUnCentavo(t *testing.T) {
	// Exactly one cent is NOT snapped
	f := newCajaFixture()
	_, err := f.svc.Abrir(context.Background(), f.usuarioID, dto.AbrirCajaRequest{FondoInicial: dec("1000")})
	require.NoError(t, err)

	cierre, err := f.svc.Cerrar(context.Background(), dto.CerrarCajaRequest{MontoContado: decPtr("1000.01")})
	require.NoError(t, err)
	require.NotNil(t, cierre.Diferencia)
	assert.True(t, dec("0.01").Equal(*cierre.Diferencia))
}

// ── Consultas ────────────────────────────────────────────────────────────────

func TestSesionActiva(t *testing.T) {
	f := newCajaFixture()
	_, err := f.svc.SesionActiva(context.Background())
	assert.True(t, apierror.Is(err, apierror.KindReglaNegocio))

	abierta, err := f.svc.Abrir(context.Background(), f.usuarioID, dto.AbrirCajaRequest{FondoInicial: dec("2000")})
	require.NoError(t, err)

	activa, err := f.svc.SesionActiva(context.Background())
	require.NoError(t, err)
	assert.Equal(t, abierta.SesionCajaID, activa.SesionCajaID)
}

func TestResumenMidShift(t *testing.T) {
	// Resumen aggregates without closing: the session stays abierta
	f := newCajaFixture()
	abierta, err := f.svc.Abrir(context.Background(), f.usuarioID, dto.AbrirCajaRequest{FondoInicial: dec("10000")})
	require.NoError(t, err)
	sesionID := uuid.MustParse(abierta.SesionCajaID)

	f.repo.registrarPago(sesionID, model.PagoEfectivo, dec("8000"))
	f.repo.registrarVuelto(sesionID, dec("500"))

	resumen, err := f.svc.Resumen(context.Background(), sesionID)
	require.NoError(t, err)
	assert.Equal(t, model.SesionAbierta, resumen.Estado)
	assert.True(t, dec("8000").Equal(resumen.Totales.Efectivo))
	assert.True(t, dec("500").Equal(resumen.VueltoEntregado))
	assert.True(t, dec("17500").Equal(resumen.EsperadoEfectivo))
	assert.Nil(t, resumen.MontoContado)
}

func TestResumenSesionInexistente(t *testing.T) {
	f := newCajaFixture()
	_, err := f.svc.Resumen(context.Background(), uuid.New())
	assert.True(t, apierror.Is(err, apierror.KindNoEncontrado))
}

func TestHistorialFiltraPorEstado(t *testing.T) {
	f := newCajaFixture()
	_, err := f.svc.Abrir(context.Background(), f.usuarioID, dto.AbrirCajaRequest{FondoInicial: dec("1000")})
	require.NoError(t, err)
	_, err = f.svc.Cerrar(context.Background(), dto.CerrarCajaRequest{MontoContado: decPtr("1000")})
	require.NoError(t, err)
	_, err = f.svc.Abrir(context.Background(), f.usuarioID, dto.AbrirCajaRequest{FondoInicial: dec("2000")})
	require.NoError(t, err)

	todas, err := f.svc.Historial(context.Background(), dto.SesionCajaFilter{})
	require.NoError(t, err)
	assert.Len(t, todas.Data, 2)

	cerradas, err := f.svc.Historial(context.Background(), dto.SesionCajaFilter{Estado: model.SesionCerrada})
	require.NoError(t, err)
	require.Len(t, cerradas.Data, 1)
	assert.Equal(t, model.SesionCerrada, cerradas.Data[0].Estado)
}
