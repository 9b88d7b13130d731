package hours

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
	records := r.Group("/hours")
	records.Use(middleware.AuthMiddleware())
	records.Use(middleware.ContextLogger(logger))
	{
		records.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "hours", "read"),
			handler.GetAll,
		)

		records.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "hours", "read"),
			handler.GetById,
		)

		records.GET("/totals/:employeeID",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "hours", "read"),
			handler.GetPeriodTotals,
		)

		records.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "hours", "create"),
			handler.Create,
		)

		records.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "hours", "update"),
			handler.Update,
		)

		records.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "hours", "delete"),
			handler.Delete,
		)
	}
}
