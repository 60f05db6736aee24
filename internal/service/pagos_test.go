package service_test

import (
	"testing"

	"decoaromas/internal/apierror"
	"decoaromas/internal/dto"
	"decoaromas/internal/model"
	"decoaromas/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConciliarPagosSinPagos(t *testing.T) {
	_, _, err := service.ConciliarPagos(nil, dec("100"))
	assert.True(t, apierror.Is(err, apierror.KindValidacion))
}

func TestConciliarPagosMetodoDesconocido(t *testing.T) {
	pagos := []dto.PagoRequest{{Metodo: "cheque", Monto: dec("100")}}
	_, _, err := service.ConciliarPagos(pagos, dec("100"))
	assert.True(t, apierror.Is(err, apierror.KindValidacion))
}

func TestConciliarPagosMontoNoPositivo(t *testing.T) {
	pagos := []dto.PagoRequest{{Metodo: model.PagoEfectivo, Monto: dec("0")}}
	_, _, err := service.ConciliarPagos(pagos, dec("100"))
	assert.True(t, apierror.Is(err, apierror.KindValidacion))
}

func TestConciliarPagosInsuficiente(t *testing.T) {
	pagos := []dto.PagoRequest{{Metodo: model.PagoEfectivo, Monto: dec("99.98")}}
	_, _, err := service.ConciliarPagos(pagos, dec("100"))
	assert.True(t, apierror.Is(err, apierror.KindReglaNegocio))
}

func TestConciliarPagosDentroDeTolerancia(t *testing.T) {
	// One cent short is accepted; no negative change either.
	pagos := []dto.PagoRequest{{Metodo: model.PagoEfectivo, Monto: dec("99.99")}}
	registros, vuelto, err := service.ConciliarPagos(pagos, dec("100"))
	require.NoError(t, err)
	assert.Len(t, registros, 1)
	assert.True(t, vuelto.IsZero())
}

func TestConciliarPagosExacto(t *testing.T) {
	pagos := []dto.PagoRequest{{Metodo: model.PagoTransferencia, Monto: dec("100")}}
	registros, vuelto, err := service.ConciliarPagos(pagos, dec("100"))
	require.NoError(t, err)
	assert.Len(t, registros, 1)
	assert.True(t, vuelto.IsZero())
}

func TestConciliarPagosVueltoEnEfectivo(t *testing.T) {
	pagos := []dto.PagoRequest{{Metodo: model.PagoEfectivo, Monto: dec("150")}}
	_, vuelto, err := service.ConciliarPagos(pagos, dec("100"))
	require.NoError(t, err)
	assert.True(t, dec("50").Equal(vuelto))
}

func TestConciliarPagosVueltoSoloSaleDelEfectivo(t *testing.T) {
	// Transfer overpays: the change cannot come out of a bank transfer, so it
	// is forced to zero and the sale still goes through.
	pagos := []dto.PagoRequest{{Metodo: model.PagoTransferencia, Monto: dec("29352")}}
	registros, vuelto, err := service.ConciliarPagos(pagos, dec("29351.52"))
	require.NoError(t, err)
	assert.Len(t, registros, 1)
	assert.True(t, vuelto.IsZero())
}

func TestConciliarPagosMixtoVueltoCubiertoPorEfectivo(t *testing.T) {
	pagos := []dto.PagoRequest{
		{Metodo: model.PagoTarjetaDebito, Monto: dec("80")},
		{Metodo: model.PagoEfectivo, Monto: dec("50")},
	}
	_, vuelto, err := service.ConciliarPagos(pagos, dec("100"))
	require.NoError(t, err)
	// 130 paid - 100 total = 30 change, covered by the 50 in cash
	assert.True(t, dec("30").Equal(vuelto))
}

func TestConciliarPagosMixtoVueltoExcedeEfectivo(t *testing.T) {
	pagos := []dto.PagoRequest{
		{Metodo: model.PagoTarjetaCredito, Monto: dec("95")},
		{Metodo: model.PagoEfectivo, Monto: dec("10")},
	}
	_, vuelto, err := service.ConciliarPagos(pagos, dec("100"))
	require.NoError(t, err)
	// Naive change would be 5, cash tendered is 10 → disbursable
	assert.True(t, dec("5").Equal(vuelto))

	pagos = []dto.PagoRequest{
		{Metodo: model.PagoTarjetaCredito, Monto: dec("98")},
		{Metodo: model.PagoEfectivo, Monto: dec("10")},
	}
	_, vuelto, err = service.ConciliarPagos(pagos, dec("100"))
	require.NoError(t, err)
	// Naive change 8 ≤ cash 10 → still disbursable
	assert.True(t, dec("8").Equal(vuelto))

	pagos = []dto.PagoRequest{
		{Metodo: model.PagoTarjetaCredito, Monto: dec("98")},
		{Metodo: model.PagoEfectivo, Monto: dec("5")},
	}
	_, vuelto, err = service.ConciliarPagos(pagos, dec("100"))
	require.NoError(t, err)
	// Naive change 3 ≤ cash 5 → fine
	assert.True(t, dec("3").Equal(vuelto))

	pagos = []dto.PagoRequest{
		{Metodo: model.PagoTarjetaCredito, Monto: dec("99")},
		{Metodo: model.PagoEfectivo, Monto: dec("2")},
	}
	_, vuelto, err = service.ConciliarPagos(pagos, dec("100"))
	require.NoError(t, err)
	// Naive change 1 ≤ cash 2 → fine
	assert.True(t, dec("1").Equal(vuelto))
}

func TestConciliarPagosVueltoMayorQueEfectivoSeAnula(t *testing.T) {
	pagos := []dto.PagoRequest{
		{Metodo: model.PagoTarjetaCredito, Monto: dec("100")},
		{Metodo: model.PagoEfectivo, Monto: dec("3")},
	}
	_, vuelto, err := service.ConciliarPagos(pagos, dec("100"))
	require.NoError(t, err)
	// Naive change 3 equals the cash tendered → still disbursable
	assert.True(t, dec("3").Equal(vuelto))

	pagos = []dto.PagoRequest{
		{Metodo: model.PagoTarjetaCredito, Monto: dec("105")},
		{Metodo: model.PagoEfectivo, Monto: dec("3")},
	}
	_, vuelto, err = service.ConciliarPagos(pagos, dec("100"))
	require.NoError(t, err)
	// Naive change 8 exceeds the 3 in cash → forced to zero
	assert.True(t, vuelto.IsZero())
}
