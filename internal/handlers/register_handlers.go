package handlers

import (
	"github.com/cnkcrm/crm_backend/cmd/docs"
	portssvc "github.com/cnkcrm/crm_backend/internal/core/ports/services"
	"github.com/cnkcrm/crm_backend/internal/middleware"
	"github.com/cnkcrm/crm_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	syncLimiter *limiter.Limiter,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, cfg, services, syncLimiter)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	syncLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1")

	v1.GET("/", GetHome)

	// Delegate route registration to specific handlers, passing required services
	RegisterErpRoutes(v1, service.ErpSync, syncLimiter)
	registerCustomerRoutes(v1, service.Customer, cfg.SyncUserID)
	registerOfferRoutes(v1, service.Offer, cfg.SyncUserID)
	registerReconciliationRoutes(v1, service.Reconciliation, cfg.SyncUserID)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// actingUserID resolves the user an operation is attributed to. There is no
// authentication layer in this deployment, so requests fall back to the
// configured system user unless an upstream proxy injected one.
func actingUserID(c *gin.Context, fallback string) string {
	if id, ok := middleware.GetUserIDFromContext(c); ok {
		return id
	}
	return fallback
}
