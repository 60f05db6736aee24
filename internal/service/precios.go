package service

import (
	"decoaromas/internal/apierror"
	"decoaromas/internal/model"

	"github.com/shopspring/decimal"
)

// centavo is the tolerance used by every monetary comparison in the core.
var centavo = decimal.NewFromFloat(0.01)

var cien = decimal.NewFromInt(100)

// PrecioUnitario resolves the unit price for a customer class: mayorista gets
// the wholesale list, everyone else the retail list.
func PrecioUnitario(p *model.Producto, tipoCliente string) decimal.Decimal {
	if tipoCliente == model.ClienteMayorista {
		return p.PrecioMayorista
	}
	return p.PrecioMinorista
}

// MontoDescuento computes a discount amount over base. Both tipo and valor nil
// means no discount; a half-specified discount is malformed input.
func MontoDescuento(base decimal.Decimal, valor *decimal.Decimal, tipo *string) (decimal.Decimal, error) {
	if tipo == nil && valor == nil {
		return decimal.Zero, nil
	}
	if tipo == nil || valor == nil {
		return decimal.Zero, apierror.Validacion("descuento incompleto: se requieren tipo y valor")
	}

	switch *tipo {
	case model.DescuentoPorcentaje:
		if valor.IsNegative() || valor.GreaterThan(cien) {
			return decimal.Zero, apierror.Validacion("el porcentaje de descuento debe estar entre 0 y 100")
		}
		return base.Mul(*valor).Div(cien), nil
	case model.DescuentoMonto:
		if valor.IsNegative() {
			return decimal.Zero, apierror.Validacion("el monto de descuento no puede ser negativo")
		}
		return *valor, nil
	default:
		return decimal.Zero, apierror.Validacionf("tipo de descuento desconocido: %s", *tipo)
	}
}

// ValidarDescuento rejects any discount amount exceeding its base (with the
// one-cent tolerance).
func ValidarDescuento(monto, base decimal.Decimal, contexto string) error {
	if monto.GreaterThan(base.Add(centavo)) {
		return apierror.ReglaNegociof("el descuento supera el importe base: %s", contexto)
	}
	return nil
}
