package service

import (
	"decoaromas/internal/apierror"
	"decoaromas/internal/dto"
	"decoaromas/internal/model"

	"github.com/shopspring/decimal"
)

// ConciliarPagos validates a set of tendered payments against the rounded net
// total and computes the cash change.
//
// The change can only be disbursed physically in cash: when the naive change
// would have to come out of a non-cash tender (vuelto > efectivo entregado),
// it is forced to zero instead of rejecting the sale. Regla de negocio
// heredada del mostrador — no cambiar sin confirmar intención.
func ConciliarPagos(pagos []dto.PagoRequest, total decimal.Decimal) ([]model.VentaPago, decimal.Decimal, error) {
	if len(pagos) == 0 {
		return nil, decimal.Zero, apierror.Validacion("debe registrar al menos un pago")
	}

	efectivo := decimal.Zero
	otros := decimal.Zero
	registros := make([]model.VentaPago, 0, len(pagos))

	for _, p := range pagos {
		if !model.MetodoPagoValido(p.Metodo) {
			return nil, decimal.Zero, apierror.Validacionf("metodo de pago desconocido: %s", p.Metodo)
		}
		if !p.Monto.IsPositive() {
			return nil, decimal.Zero, apierror.Validacion("el monto de cada pago debe ser mayor a cero")
		}
		if p.Metodo == model.PagoEfectivo {
			efectivo = efectivo.Add(p.Monto)
		} else {
			otros = otros.Add(p.Monto)
		}
		registros = append(registros, model.VentaPago{Metodo: p.Metodo, Monto: p.Monto})
	}

	pagado := efectivo.Add(otros)
	if pagado.LessThan(total.Sub(centavo)) {
		return nil, decimal.Zero, apierror.ReglaNegocio("el monto total de pagos es insuficiente")
	}

	vuelto := pagado.Sub(total)
	if vuelto.IsNegative() {
		vuelto = decimal.Zero
	}
	if vuelto.GreaterThan(efectivo.Add(centavo)) {
		vuelto = decimal.Zero
	}

	return registros, vuelto, nil
}
