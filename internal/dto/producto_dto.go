package dto

import "github.com/shopspring/decimal"

type CrearProductoRequest struct {
	CodigoBarras    string           `json:"codigo_barras"    validate:"required,min=3"`
	Nombre          string           `json:"nombre"           validate:"required,min=2"`
	Descripcion     *string          `json:"descripcion"`
	Categoria       string           `json:"categoria"        validate:"required"`
	PrecioCosto     *decimal.Decimal `json:"precio_costo"`
	PrecioMinorista decimal.Decimal  `json:"precio_minorista" validate:"required"`
	PrecioMayorista decimal.Decimal  `json:"precio_mayorista" validate:"required"`
	StockInicial    int              `json:"stock_inicial"    validate:"min=0"`
	StockMinimo     int              `json:"stock_minimo"     validate:"min=0"`
}

type ActualizarProductoRequest struct {
	Nombre          string           `json:"nombre"           validate:"required,min=2"`
	Descripcion     *string          `json:"descripcion"`
	Categoria       string           `json:"categoria"        validate:"required"`
	PrecioCosto     *decimal.Decimal `json:"precio_costo"`
	PrecioMinorista decimal.Decimal  `json:"precio_minorista" validate:"required"`
	PrecioMayorista decimal.Decimal  `json:"precio_mayorista" validate:"required"`
	StockMinimo     int              `json:"stock_minimo"     validate:"min=0"`
}

type ProductoFilter struct {
	Nombre    string `form:"nombre"`
	Barcode   string `form:"barcode"`
	Categoria string `form:"categoria"`
	Activo    string `form:"activo"` // "false" = inactivos, "all" = todos, default activos
	BajoStock bool   `form:"bajo_stock"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProductoResponse struct {
	ID              string           `json:"id"`
	CodigoBarras    string           `json:"codigo_barras"`
	Nombre          string           `json:"nombre"`
	Descripcion     *string          `json:"descripcion,omitempty"`
	Categoria       string           `json:"categoria"`
	PrecioCosto     *decimal.Decimal `json:"precio_costo,omitempty"`
	PrecioMinorista decimal.Decimal  `json:"precio_minorista"`
	PrecioMayorista decimal.Decimal  `json:"precio_mayorista"`
	StockActual     int              `json:"stock_actual"`
	StockMinimo     int              `json:"stock_minimo"`
	Activo          bool             `json:"activo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// PrecioResponse is the payload of the cached barcode price check.
type PrecioResponse struct {
	ProductoID      string          `json:"producto_id"`
	Nombre          string          `json:"nombre"`
	PrecioMinorista decimal.Decimal `json:"precio_minorista"`
	PrecioMayorista decimal.Decimal `json:"precio_mayorista"`
}
