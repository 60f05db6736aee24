package service_test

import (
	"testing"

	"decoaromas/internal/apierror"
	"decoaromas/internal/model"
	"decoaromas/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string              { return &s }
func decPtr(s string) *decimal.Decimal   { d := dec(s); return &d }

func TestPrecioUnitarioPorTipoCliente(t *testing.T) {
	p := &model.Producto{
		PrecioMinorista: dec("1500.00"),
		PrecioMayorista: dec("1100.00"),
	}

	assert.True(t, dec("1500.00").Equal(service.PrecioUnitario(p, model.ClienteMinorista)))
	assert.True(t, dec("1100.00").Equal(service.PrecioUnitario(p, model.ClienteMayorista)))
	// Unknown class falls back to the retail list
	assert.True(t, dec("1500.00").Equal(service.PrecioUnitario(p, "otro")))
}

func TestMontoDescuentoSinDescuento(t *testing.T) {
	monto, err := service.MontoDescuento(dec("1000"), nil, nil)
	require.NoError(t, err)
	assert.True(t, monto.IsZero())
}

func TestMontoDescuentoIncompleto(t *testing.T) {
	_, err := service.MontoDescuento(dec("1000"), decPtr("10"), nil)
	assert.True(t, apierror.Is(err, apierror.KindValidacion))

	_, err = service.MontoDescuento(dec("1000"), nil, strPtr(model.DescuentoPorcentaje))
	assert.True(t, apierror.Is(err, apierror.KindValidacion))
}

func TestMontoDescuentoPorcentaje(t *testing.T) {
	monto, err := service.MontoDescuento(dec("200"), decPtr("10"), strPtr(model.DescuentoPorcentaje))
	require.NoError(t, err)
	assert.True(t, dec("20").Equal(monto))

	// Bounds: 0 and 100 are valid, anything outside is not
	_, err = service.MontoDescuento(dec("200"), decPtr("101"), strPtr(model.DescuentoPorcentaje))
	assert.True(t, apierror.Is(err, apierror.KindValidacion))

	_, err = service.MontoDescuento(dec("200"), decPtr("-1"), strPtr(model.DescuentoPorcentaje))
	assert.True(t, apierror.Is(err, apierror.KindValidacion))

	cien, err := service.MontoDescuento(dec("200"), decPtr("100"), strPtr(model.DescuentoPorcentaje))
	require.NoError(t, err)
	assert.True(t, dec("200").Equal(cien))
}

func TestMontoDescuentoMonto(t *testing.T) {
	monto, err := service.MontoDescuento(dec("200"), decPtr("50"), strPtr(model.DescuentoMonto))
	require.NoError(t, err)
	assert.True(t, dec("50").Equal(monto))

	_, err = service.MontoDescuento(dec("200"), decPtr("-50"), strPtr(model.DescuentoMonto))
	assert.True(t, apierror.Is(err, apierror.KindValidacion))
}

func TestMontoDescuentoTipoDesconocido(t *testing.T) {
	_, err := service.MontoDescuento(dec("200"), decPtr("50"), strPtr("cupon"))
	assert.True(t, apierror.Is(err, apierror.KindValidacion))
}

func TestValidarDescuentoSuperaBase(t *testing.T) {
	// Exceeds base beyond the one-cent tolerance
	err := service.ValidarDescuento(dec("100.02"), dec("100"), "producto X")
	assert.True(t, apierror.Is(err, apierror.KindReglaNegocio))

	// Within tolerance: allowed
	assert.NoError(t, service.ValidarDescuento(dec("100.01"), dec("100"), "producto X"))
	assert.NoError(t, service.ValidarDescuento(dec("100"), dec("100"), "producto X"))
}
