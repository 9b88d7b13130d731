package payroll

import (
	"go-nomina/internal/middleware"
	"go-nomina/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	payrolls.Use(middleware.ContextLogger(logger))
	{
		payrolls.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetAll,
		)

		payrolls.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetById,
		)

		// Calculations replay safely behind the idempotency key.
		payrolls.POST("/calculate/:employeeID",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			middleware.Idempotency(rdb),
			handler.Calculate,
		)

		payrolls.POST("/batch-calculate",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			middleware.Idempotency(rdb),
			handler.CalculateBatch,
		)

		payrolls.POST("/:id/mark-paid",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "update"),
			handler.MarkPaid,
		)

		payrolls.POST("/:id/void",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "update"),
			handler.Void,
		)

		payrolls.POST("/:id/entries/:entryID/payslip",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.RequestPayslip,
		)

		payrolls.GET("/:id/entries/:entryID/payslip/download",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.DownloadPayslip,
		)
	}
}
