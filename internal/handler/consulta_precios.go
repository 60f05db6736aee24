package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"decoaromas/internal/apierror"
	"decoaromas/internal/dto"
	"decoaromas/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// ConsultaPreciosHandler serves the barcode price check used at the counter.
// Read-only: no stock or session side effects whatsoever.
type ConsultaPreciosHandler struct {
	repo repository.ProductoRepository
	rdb  *redis.Client
	ttl  time.Duration
}

func NewConsultaPreciosHandler(repo repository.ProductoRepository, rdb *redis.Client, ttlSeconds int) *ConsultaPreciosHandler {
	return &ConsultaPreciosHandler{repo: repo, rdb: rdb, ttl: time.Duration(ttlSeconds) * time.Second}
}

// GetPrecioPorBarcode godoc
// @Summary Consulta de precio por codigo de barras
// @Tags precio
// @Produce json
// @Param barcode path string true "Codigo de barras"
// @Success 200 {object} dto.PrecioResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/precio/{barcode} [get]
func (h *ConsultaPreciosHandler) GetPrecioPorBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	ctx := c.Request.Context()
	cacheKey := "precio:" + barcode

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.PrecioResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	producto, err := h.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}

	resp := dto.PrecioResponse{
		ProductoID:      producto.ID.String(),
		Nombre:          producto.Nombre,
		PrecioMinorista: producto.PrecioMinorista,
		PrecioMayorista: producto.PrecioMayorista,
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, h.ttl).Err()
	}

	c.JSON(http.StatusOK, resp)
}
