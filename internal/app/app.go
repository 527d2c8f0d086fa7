package app

import (
	"os"

	"go-payroll/internal/auth"
	"go-payroll/internal/department"
	"go-payroll/internal/employee"
	"go-payroll/internal/jobrole"
	"go-payroll/internal/leave"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/middleware"
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/connection"
	"go-payroll/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	if err := migrate(gormDB); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	router.Use(middleware.RequestID())

	return registerModules(router, gormDB, redisClient)
}

func migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&auth.User{},
		&department.Department{},
		&jobrole.JobRole{},
		&employee.Employee{},
		&leave.LeaveRequest{},
		&payroll.Payroll{},
		&counter.Counter{},
		&kafka.OutboxEventRecord{},
	)
}
