package settings

import (
	"go-nomina/internal/middleware"
	"go-nomina/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	cfg := r.Group("/settings")
	cfg.Use(middleware.AuthMiddleware())
	cfg.Use(middleware.ContextLogger(logger))
	{
		cfg.GET("",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "settings", "read"),
			handler.Get,
		)

		cfg.PUT("",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "settings", "update"),
			handler.Update,
		)
	}
}
