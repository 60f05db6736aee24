package router

import (
	"time"

	"decoaromas/internal/config"
	"decoaromas/internal/handler"
	"decoaromas/internal/middleware"
	"decoaromas/internal/repository"
	"decoaromas/internal/service"
	"decoaromas/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	movimientoStockRepo := repository.NewMovimientoStockRepository(db)
	cotizacionRepo := repository.NewCotizacionRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	inventarioSvc := service.NewInventarioService(productoRepo, movimientoStockRepo)
	cajaSvc := service.NewCajaService(cajaRepo, dispatcher)
	cotizacionSvc := service.NewCotizacionService(cotizacionRepo)
	ventaSvc := service.NewVentaService(ventaRepo, inventarioSvc, cajaRepo, productoRepo, clienteRepo, usuarioRepo, cotizacionRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	cotizacionesH := handler.NewCotizacionesHandler(cotizacionSvc)
	consultaH := handler.NewConsultaPreciosHandler(productoRepo, rdb, cfg.PrecioCacheTTL)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required (scanner kiosk at the counter)
	r.GET("/v1/precio/:barcode", consultaH.GetPrecioPorBarcode)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: cajero, supervisor, administrador — declared per-endpoint
		v1.POST("/ventas", middleware.RequireRole("cajero", "supervisor", "administrador"), ventasH.RegistrarVenta)
		v1.GET("/ventas", middleware.RequireRole("cajero", "supervisor", "administrador"), ventasH.ListarVentas)
		v1.GET("/ventas/:id", middleware.RequireRole("cajero", "supervisor", "administrador"), ventasH.ObtenerVenta)
		v1.PUT("/ventas/:id/comprobante", middleware.RequireRole("cajero", "supervisor", "administrador"), ventasH.ActualizarComprobante)
		v1.DELETE("/ventas/:id", middleware.RequireRole("supervisor", "administrador"), ventasH.EliminarVenta)

		// Catalog reads — any authenticated role
		v1.GET("/productos", middleware.RequireRole("cajero", "supervisor", "administrador"), productosH.Listar)
		v1.GET("/productos/:id", middleware.RequireRole("cajero", "supervisor", "administrador"), productosH.Obtener)
		// Write operations — administrador only
		prods := v1.Group("/productos", middleware.RequireRole("administrador"))
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
		}

		inv := v1.Group("/inventario", middleware.RequireRole("administrador", "supervisor"))
		{
			inv.POST("/:id/ajuste", inventarioH.AjustarStock)
			inv.POST("/movimientos", inventarioH.MovimientoManual)
			inv.GET("/movimientos", inventarioH.ListarMovimientos)
		}

		caja := v1.Group("/caja")
		{
			caja.POST("/abrir", middleware.RequireRole("cajero", "supervisor", "administrador"), cajaH.Abrir)
			caja.POST("/cerrar", middleware.RequireRole("cajero", "supervisor", "administrador"), cajaH.Cerrar)
			caja.GET("/activa", middleware.RequireRole("cajero", "supervisor", "administrador"), cajaH.SesionActiva)
			caja.GET("/:id/resumen", middleware.RequireRole("cajero", "supervisor", "administrador"), cajaH.Resumen)
			caja.GET("/historial", middleware.RequireRole("supervisor", "administrador"), cajaH.Historial)
		}

		clientes := v1.Group("/clientes", middleware.RequireRole("cajero", "supervisor", "administrador"))
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.Obtener)
			clientes.PUT("/:id", clientesH.Actualizar)
		}
		v1.DELETE("/clientes/:id", middleware.RequireRole("administrador"), clientesH.Desactivar)

		cotizaciones := v1.Group("/cotizaciones", middleware.RequireRole("cajero", "supervisor", "administrador"))
		{
			cotizaciones.POST("", cotizacionesH.Crear)
			cotizaciones.GET("", cotizacionesH.Listar)
			cotizaciones.GET("/:id", cotizacionesH.Obtener)
		}

		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
