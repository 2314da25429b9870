package handlers

import (
	"net/http"

	"github.com/finpulse/finpulse_ledger/cmd/docs"
	portssvc "github.com/finpulse/finpulse_ledger/internal/core/ports/services"
	"github.com/finpulse/finpulse_ledger/internal/middleware"
	"github.com/finpulse/finpulse_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// Limiters holds the optional rate limiters applied to the API. A nil
// limiter disables limiting for its routes.
type Limiters struct {
	API   *limiter.Limiter
	Login *limiter.Limiter
}

func (l Limiters) middleware(lim *limiter.Limiter) []gin.HandlerFunc {
	if lim == nil {
		return nil
	}
	return []gin.HandlerFunc{middleware.RateLimit(lim)}
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiters Limiters,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	registerAuthRoutes(r, services.Auth, limiters.middleware(limiters.Login)...)

	setupAPIV1Routes(r, cfg, services, limiters)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	limiters Limiters,
) {
	mw := append(limiters.middleware(limiters.API), middleware.AuthMiddleware(cfg.JWTSecret))
	v1 := r.Group("/api/v1", mw...)

	registerAccountRoutes(v1, service.Account)
	registerJournalRoutes(v1, service.Journal)
	registerTemplateRoutes(v1, service.Template, service.Period)
	registerReportingRoutes(v1, service.Reporting, cfg.DisplayCurrency)
	registerAuditRoutes(v1, service.Audit)
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
