package app

import (
	"os"

	"go-payroll/internal/access"
	"go-payroll/internal/auth"
	"go-payroll/internal/department"
	"go-payroll/internal/employee"
	"go-payroll/internal/insight"
	"go-payroll/internal/jobrole"
	"go-payroll/internal/leave"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	// --- Repositories ---
	accessRepo := access.NewRepository(db)
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(db)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(db)
	jobroleRepo := jobrole.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(db)
	ledger := employee.NewLedger(db)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(db)

	// --- Access Guard ---
	guard, err := access.NewGuard(accessRepo)
	if err != nil {
		return err
	}

	// --- Services ---
	departmentService := department.NewService(departmentRepo)
	employeeService := employee.NewService(db, employeeRepo, ledger, counterRepo, rdb)
	jobroleService := jobrole.NewService(jobroleRepo)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, employeeRepo, ledger, outboxRepo)
	payrollService := payroll.NewServiceWithOutbox(db, payrollRepo, employeeRepo, outboxRepo, os.Getenv("PAYSLIP_DIR"))
	authService := auth.NewService(authRepo, employeeService)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)
	jobroleHandler := jobrole.NewHandler(jobroleService)
	leaveHandler := leave.NewHandler(leaveService, insight.NewGenerator())
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		department.RegisterRoutes(api, departmentHandler, guard)
		employee.RegisterRoutes(api, employeeHandler, guard)
		jobrole.RegisterRoutes(api, jobroleHandler, guard)
		leave.RegisterRoutes(api, leaveHandler, guard)
		payroll.RegisterRoutes(api, payrollHandler, guard, rdb)
	}

	return nil
}
