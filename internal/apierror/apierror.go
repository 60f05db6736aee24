// Package apierror defines the error taxonomy shared by services and handlers.
// Every error a service returns carries a display-safe message plus a
// discriminable kind, so handlers can map it to an HTTP status and callers can
// branch with errors.As without string matching. Internal details (stack
// traces, DB errors) never travel through this package.
package apierror

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error.
type Kind string

const (
	// KindValidacion: malformed input (pagos vacíos, rango de descuento inválido).
	KindValidacion Kind = "validacion"
	// KindNoEncontrado: referenced entity does not exist.
	KindNoEncontrado Kind = "no_encontrado"
	// KindReglaNegocio: the request is well-formed but the business state
	// forbids it (stock insuficiente, caja ya abierta, pago insuficiente).
	KindReglaNegocio Kind = "regla_negocio"
	// KindConflicto: uniqueness violation (numero de comprobante duplicado).
	KindConflicto Kind = "conflicto"
)

// Error is the canonical domain error. Detail is safe to show to clients.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func Validacion(detail string) *Error   { return &Error{Kind: KindValidacion, Detail: detail} }
func NoEncontrado(detail string) *Error { return &Error{Kind: KindNoEncontrado, Detail: detail} }
func ReglaNegocio(detail string) *Error { return &Error{Kind: KindReglaNegocio, Detail: detail} }
func Conflicto(detail string) *Error    { return &Error{Kind: KindConflicto, Detail: detail} }

func Validacionf(format string, args ...interface{}) *Error {
	return Validacion(fmt.Sprintf(format, args...))
}

func ReglaNegociof(format string, args ...interface{}) *Error {
	return ReglaNegocio(fmt.Sprintf(format, args...))
}

// From extracts the domain error from an error chain.
func From(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Is reports whether err is a domain error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := From(err)
	return ok && e.Kind == kind
}

// ── HTTP envelopes ───────────────────────────────────────────────────────────

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors from request binding.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
