package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"safetyportal/internal/api/handlers/account"
	"safetyportal/internal/api/handlers/manufacturers"
	"safetyportal/internal/api/handlers/orders"
	"safetyportal/internal/api/handlers/partners"
	"safetyportal/internal/api/handlers/products"
	"safetyportal/internal/api/handlers/reminders"
	"safetyportal/internal/api/handlers/similarity"
	"safetyportal/internal/auth"
	"safetyportal/internal/domain/repositories"
	"safetyportal/server/handlers"
	"safetyportal/server/middleware"
	"safetyportal/server/monitoring"
)

// Handlers обработчики API
type Handlers struct {
	Account       *account.Handler
	Manufacturers *manufacturers.Handler
	Partners      *partners.Handler
	Products      *products.Handler
	Orders        *orders.Handler
	Reminders     *reminders.Handler
	Similarity    *similarity.Handler
}

// Options параметры маршрутизатора
type Options struct {
	AllowedOrigins []string
	LoginRate      float64
	LoginBurst     int
	EnableSwagger  bool
}

// Dependencies инфраструктура, общая для всех маршрутов
type Dependencies struct {
	Auth    *auth.Manager
	Health  *monitoring.HealthChecker
	Metrics *monitoring.Metrics
	Logger  *slog.Logger
}

// NewRouter создает gin engine со всеми маршрутами портала
func NewRouter(h Handlers, deps Dependencies, opts Options) *gin.Engine {
	router := gin.New()

	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinCORSMiddleware(opts.AllowedOrigins))
	router.Use(middleware.GinGzipMiddleware())
	router.Use(middleware.GinLoggerMiddleware(deps.Logger))
	if deps.Metrics != nil {
		router.Use(middleware.GinMetricsMiddleware(deps.Metrics))
	}

	if deps.Health != nil {
		router.GET("/health", deps.Health.GinHandler())
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if opts.EnableSwagger {
		handlers.RegisterSwaggerRoutes(router)
	}

	api := router.Group("/api")

	loginLimiter := middleware.NewRateLimiter(opts.LoginRate, opts.LoginBurst)
	api.POST("/auth/login", loginLimiter.GinMiddleware(), h.Account.Login)

	protected := api.Group("")
	protected.Use(auth.Authenticate(deps.Auth))
	adminOnly := auth.RequireRole(repositories.RoleAdmin)

	protected.GET("/auth/me", h.Account.Me)

	users := protected.Group("/users", adminOnly)
	users.GET("", h.Account.ListUsers)
	users.POST("", h.Account.CreateUser)
	users.DELETE("/:id", h.Account.DeleteUser)

	registerDirectoryRoutes(protected, h, adminOnly)
	registerOrderRoutes(protected, h, adminOnly)

	reminderRoutes := protected.Group("/reminders")
	reminderRoutes.GET("", h.Reminders.List)
	reminderRoutes.POST("", h.Reminders.Create)
	reminderRoutes.GET("/due", h.Reminders.Due)
	reminderRoutes.POST("/:id/dismiss", h.Reminders.Dismiss)

	protected.POST("/similarity/compare", h.Similarity.Compare)

	return router
}

// registerDirectoryRoutes регистрирует справочники: производители, контрагенты, продукция
func registerDirectoryRoutes(rg *gin.RouterGroup, h Handlers, adminOnly gin.HandlerFunc) {
	m := rg.Group("/manufacturers")
	m.GET("", h.Manufacturers.List)
	m.POST("", h.Manufacturers.Create)
	m.POST("/import", adminOnly, h.Manufacturers.Import)
	m.GET("/:id", h.Manufacturers.Get)
	m.PUT("/:id", h.Manufacturers.Update)
	m.DELETE("/:id", adminOnly, h.Manufacturers.Delete)

	for _, kind := range repositories.PartnerKinds {
		h.Partners.Routes(rg.Group("/"+string(kind)+"s"), kind, adminOnly)
	}

	p := rg.Group("/products")
	p.GET("", h.Products.List)
	p.POST("", h.Products.Create)
	p.GET("/:id", h.Products.Get)
	p.PUT("/:id", h.Products.Update)
	p.DELETE("/:id", adminOnly, h.Products.Delete)
}

func registerOrderRoutes(rg *gin.RouterGroup, h Handlers, adminOnly gin.HandlerFunc) {
	o := rg.Group("/orders")
	o.GET("", h.Orders.List)
	o.POST("", h.Orders.Create)
	o.POST("/extract", h.Orders.Extract)
	o.GET("/export", adminOnly, h.Orders.Export)
	o.GET("/:id", h.Orders.Get)
	o.PUT("/:id", h.Orders.Update)
	o.DELETE("/:id", adminOnly, h.Orders.Delete)
}
