package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"decoaromas/internal/apierror"
	"decoaromas/internal/dto"
	"decoaromas/internal/model"
	"decoaromas/internal/repository"
)

type CotizacionService interface {
	Crear(ctx context.Context, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CotizacionResponse, error)
	Listar(ctx context.Context, estado string) ([]dto.CotizacionResponse, error)
}

type cotizacionService struct {
	repo repository.CotizacionRepository
}

func NewCotizacionService(repo repository.CotizacionRepository) CotizacionService {
	return &cotizacionService{repo: repo}
}

func (s *cotizacionService) Crear(ctx context.Context, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error) {
	if req.Total.IsNegative() {
		return nil, apierror.Validacion("el total de la cotizacion no puede ser negativo")
	}
	cot := &model.Cotizacion{
		Estado: model.CotizacionPendiente,
		Total:  req.Total,
	}
	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, apierror.Validacion("cliente_id invalido")
		}
		cot.ClienteID = &cid
	}
	if err := s.repo.Create(ctx, cot); err != nil {
		return nil, err
	}
	return cotizacionToResponse(cot), nil
}

func (s *cotizacionService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CotizacionResponse, error) {
	cot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("cotizacion no encontrada")
	}
	return cotizacionToResponse(cot), nil
}

func (s *cotizacionService) Listar(ctx context.Context, estado string) ([]dto.CotizacionResponse, error) {
	cotizaciones, err := s.repo.List(ctx, estado)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CotizacionResponse, 0, len(cotizaciones))
	for i := range cotizaciones {
		out = append(out, *cotizacionToResponse(&cotizaciones[i]))
	}
	return out, nil
}

func cotizacionToResponse(c *model.Cotizacion) *dto.CotizacionResponse {
	resp := &dto.CotizacionResponse{
		ID:        c.ID.String(),
		Estado:    c.Estado,
		Total:     c.Total,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
	if c.ClienteID != nil {
		cid := c.ClienteID.String()
		resp.ClienteID = &cid
	}
	return resp
}
