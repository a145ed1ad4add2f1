package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/pranavkm07/finance_plan_app/internal/core/ports/services"
	"github.com/pranavkm07/finance_plan_app/internal/middleware"
	"github.com/pranavkm07/finance_plan_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through interfaces.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, planSvc portssvc.PlanSvcFacade) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerAuthRoutes(r, cfg)

	// Everything under /api/v1 requires a valid token.
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	registerPlanRoutes(v1, planSvc)
}
