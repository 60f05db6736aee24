package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"decoaromas/internal/infra"
	"decoaromas/internal/model"
	"decoaromas/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ReporteCajaWorker mails the reconciliation summary of a closed session to
// the supervisor address. Failures are logged and dropped: the close itself
// already committed and is never retried from here.
type ReporteCajaWorker struct {
	cajaRepo     repository.CajaRepository
	mailer       *infra.Mailer
	destinatario string
}

func NewReporteCajaWorker(cajaRepo repository.CajaRepository, mailer *infra.Mailer, destinatario string) *ReporteCajaWorker {
	return &ReporteCajaWorker{cajaRepo: cajaRepo, mailer: mailer, destinatario: destinatario}
}

type reporteCajaPayload struct {
	SesionID string `json:"sesion_id"`
}

func (w *ReporteCajaWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload reporteCajaPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("payload inválido: %w", err)
	}
	id, err := uuid.Parse(payload.SesionID)
	if err != nil {
		return fmt.Errorf("sesion_id inválido: %w", err)
	}

	sesion, err := w.cajaRepo.FindSesionByID(ctx, id)
	if err != nil {
		return fmt.Errorf("sesión no encontrada: %w", err)
	}
	if sesion.Estado != model.SesionCerrada {
		return fmt.Errorf("sesión %s no está cerrada", payload.SesionID)
	}

	if w.destinatario == "" {
		log.Debug().Msg("sin destinatario de reportes, se omite el email")
		return nil
	}

	subject := fmt.Sprintf("Cierre de caja %s", sesion.ClosedAt.Format("2006-01-02"))
	body := buildReporteBody(sesion)
	return w.mailer.SendReporte(w.destinatario, subject, body)
}

func buildReporteBody(s *model.SesionCaja) string {
	val := func(d *decimal.Decimal) string {
		if d == nil {
			return "0"
		}
		return d.StringFixed(2)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Cierre de caja %s\n\n", s.ID)
	fmt.Fprintf(&b, "Fondo inicial:        %s\n", s.FondoInicial.StringFixed(2))
	fmt.Fprintf(&b, "Ventas en efectivo:   %s\n", val(s.TotalEfectivo))
	fmt.Fprintf(&b, "Transferencias:       %s\n", val(s.TotalTransferencia))
	fmt.Fprintf(&b, "Tarjeta debito:       %s\n", val(s.TotalTarjetaDebito))
	fmt.Fprintf(&b, "Tarjeta credito:      %s\n", val(s.TotalTarjetaCredito))
	fmt.Fprintf(&b, "Vuelto entregado:     %s\n", val(s.VueltoEntregado))
	fmt.Fprintf(&b, "Efectivo esperado:    %s\n", val(s.MontoEsperado))
	fmt.Fprintf(&b, "Efectivo contado:     %s\n", val(s.MontoContado))
	fmt.Fprintf(&b, "Diferencia:           %s\n", val(s.Diferencia))
	if s.Diferencia != nil && s.Diferencia.IsNegative() {
		b.WriteString("\nATENCION: faltante de caja.\n")
	}
	return b.String()
}
