package app

import (
	"database/sql"
	"os"
	"path/filepath"

	"go-nomina/internal/auth"
	"go-nomina/internal/employee"
	"go-nomina/internal/hours"
	"go-nomina/internal/messaging/kafka"
	"go-nomina/internal/payroll"
	"go-nomina/internal/rbac"
	"go-nomina/internal/rbac/infra"
	"go-nomina/internal/settings"
	"go-nomina/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	hoursRepo := hours.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	authService := auth.NewService(authRepo, rbacService, employeeRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	hoursService := hours.NewService(db, hoursRepo)
	settingsService := settings.NewService(db, settingsRepo, rdb)
	payrollService := payroll.NewService(
		db,
		payrollRepo,
		employeeRepo,
		hoursRepo,
		settingsService,
		counterRepo,
		outboxRepo,
		payroll.NewPayslipWriter(os.Getenv("PAYSLIP_DIR")),
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	hoursHandler := hours.NewHandler(hoursService)
	settingsHandler := settings.NewHandler(settingsService)
	payrollHandler := payroll.NewHandler(payrollService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		hours.RegisterRoutes(api, hoursHandler, rbacService, logger)
		settings.RegisterRoutes(api, settingsHandler, rbacService, logger)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb, logger)
	}

	return nil
}
