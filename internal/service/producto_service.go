package service

import (
	"context"

	"decoaromas/internal/apierror"
	"decoaromas/internal/dto"
	"decoaromas/internal/model"
	"decoaromas/internal/repository"

	"github.com/google/uuid"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if existente, err := s.repo.FindByBarcode(ctx, req.CodigoBarras); err == nil && existente != nil {
		return nil, apierror.Conflicto("ya existe un producto con ese código de barras")
	}

	p := &model.Producto{
		CodigoBarras:    req.CodigoBarras,
		Nombre:          req.Nombre,
		Descripcion:     req.Descripcion,
		Categoria:       req.Categoria,
		PrecioCosto:     req.PrecioCosto,
		PrecioMinorista: req.PrecioMinorista,
		PrecioMayorista: req.PrecioMayorista,
		StockActual:     req.StockInicial,
		StockMinimo:     req.StockMinimo,
		Activo:          true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("producto no encontrado")
	}

	p.Nombre = req.Nombre
	p.Descripcion = req.Descripcion
	p.Categoria = req.Categoria
	p.PrecioCosto = req.PrecioCosto
	p.PrecioMinorista = req.PrecioMinorista
	p.PrecioMayorista = req.PrecioMayorista
	p.StockMinimo = req.StockMinimo

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("producto no encontrado")
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		items = append(items, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NoEncontrado("producto no encontrado")
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NoEncontrado("producto no encontrado")
	}
	return s.repo.Reactivar(ctx, id)
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:              p.ID.String(),
		CodigoBarras:    p.CodigoBarras,
		Nombre:          p.Nombre,
		Descripcion:     p.Descripcion,
		Categoria:       p.Categoria,
		PrecioCosto:     p.PrecioCosto,
		PrecioMinorista: p.PrecioMinorista,
		PrecioMayorista: p.PrecioMayorista,
		StockActual:     p.StockActual,
		StockMinimo:     p.StockMinimo,
		Activo:          p.Activo,
	}
}
