package handler

import (
	"net/http"

	"decoaromas/internal/apierror"
	"decoaromas/internal/dto"
	"decoaromas/internal/middleware"
	"decoaromas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// AjustarStock godoc
// @Summary Ajusta el stock de un producto a una cantidad absoluta
// @Tags inventario
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id   path string               true "UUID del producto"
// @Param body body dto.AjusteStockRequest true "Nuevo stock"
// @Success 200 {object} dto.ProductoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/inventario/{id}/ajuste [post]
func (h *InventarioHandler) AjustarStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AjusteStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	producto, err := h.svc.AjusteAbsoluto(c.Request.Context(), id, req.NuevoStock, usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"producto_id":  producto.ID.String(),
		"stock_actual": producto.StockActual,
	})
}

// MovimientoManual godoc
// @Summary Registra una entrada o salida manual de stock
// @Tags inventario
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MovimientoManualRequest true "Movimiento"
// @Success 200
// @Failure 409 {object} apierror.APIError
// @Router /v1/inventario/movimientos [post]
func (h *InventarioHandler) MovimientoManual(c *gin.Context) {
	var req dto.MovimientoManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	producto, err := h.svc.MovimientoManual(c.Request.Context(), req, usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"producto_id":  producto.ID.String(),
		"stock_actual": producto.StockActual,
	})
}

// ListarMovimientos returns the append-only stock ledger, newest first.
func (h *InventarioHandler) ListarMovimientos(c *gin.Context) {
	var filter dto.MovimientoStockFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
