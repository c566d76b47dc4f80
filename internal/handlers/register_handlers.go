package handlers

import (
	"github.com/SscSPs/crew_ledger/cmd/docs"
	portssvc "github.com/SscSPs/crew_ledger/internal/core/ports/services"
	"github.com/SscSPs/crew_ledger/internal/middleware"
	"github.com/SscSPs/crew_ledger/internal/notify"
	"github.com/SscSPs/crew_ledger/internal/platform/config"
	"github.com/SscSPs/crew_ledger/internal/platform/health"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// Infrastructure carries the non-service dependencies the routes need. Nil fields disable their routes.
type Infrastructure struct {
	Bus         *notify.Bus
	Health      *health.Manager
	Gatherer    prometheus.Gatherer
	RateLimiter *limiter.Limiter
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	infra Infrastructure,
) {
	r.GET("/health", health.LivenessHandler)
	if infra.Health != nil {
		r.GET("/ready", health.ReadinessHandler(infra.Health))
	}
	if infra.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(infra.Gatherer, promhttp.HandlerOpts{})))
	}

	setupAPIV1Routes(r, cfg, services, infra)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	infra Infrastructure,
) {
	v1 := r.Group("/api/v1")
	if infra.RateLimiter != nil {
		v1.Use(middleware.RateLimit(infra.RateLimiter))
	}
	v1.Use(middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	registerAccountRoutes(v1, services.Ledger)
	registerLedgerRoutes(v1, services.Ledger)
	registerOrderRoutes(v1, services.Order, services.Settlement)
	registerBrigadeRoutes(v1, services.Brigade)
	registerSettingsRoutes(v1, services.Settings)
	if infra.Bus != nil {
		registerEventRoutes(v1, infra.Bus, cfg.NotifyChannels, cfg.NotifySubscriberBuffer)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
