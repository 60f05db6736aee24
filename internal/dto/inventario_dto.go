package dto

// AjusteStockRequest sets the absolute stock of a product; the service derives
// the signed diff and records one correction movement (none when diff == 0).
type AjusteStockRequest struct {
	NuevoStock int `json:"nuevo_stock" validate:"min=0"`
}

// MovimientoManualRequest applies a manual entrada/salida immediately.
type MovimientoManualRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
	Direccion  string `json:"direccion"   validate:"required,oneof=entrada salida"`
	Motivo     string `json:"motivo"      validate:"required,oneof=produccion correccion"`
}

type MovimientoStockFilter struct {
	ProductoID string `form:"producto_id" validate:"omitempty,uuid"`
	Motivo     string `form:"motivo"`
	Page       int    `form:"page,default=1"    validate:"min=1"`
	Limit      int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type MovimientoStockResponse struct {
	ID            string `json:"id"`
	ProductoID    string `json:"producto_id"`
	Producto      string `json:"producto"`
	Direccion     string `json:"direccion"`
	Motivo        string `json:"motivo"`
	Cantidad      int    `json:"cantidad"`
	StockAnterior int    `json:"stock_anterior"`
	StockNuevo    int    `json:"stock_nuevo"`
	UsuarioID     string `json:"usuario_id"`
	CreatedAt     string `json:"created_at"`
}

type MovimientoStockListResponse struct {
	Data  []MovimientoStockResponse `json:"data"`
	Total int64                     `json:"total"`
	Page  int                       `json:"page"`
	Limit int                       `json:"limit"`
}
