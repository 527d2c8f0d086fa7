package payroll

import (
	"go-payroll/internal/access"
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	guard access.Guard,
	rdb *redis.Client,
) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.GET("", middleware.Authorize(guard, "payroll", "list"), handler.GetAll)
		payrolls.GET("/period", middleware.Authorize(guard, "payroll", "list"), handler.GetByPeriod)
		payrolls.GET("/employee/:employeeId", middleware.Authorize(guard, "payroll", "read"), middleware.RequireSelfOrAdmin(guard, "employeeId"), handler.GetByEmployee)
		payrolls.GET("/:id", middleware.Authorize(guard, "payroll", "read"), middleware.RequirePayrollOwnerOrAdmin(guard), handler.GetById)
		payrolls.GET("/:id/payslip", middleware.Authorize(guard, "payroll", "read"), middleware.RequirePayrollOwnerOrAdmin(guard), handler.DownloadPayslip)
		payrolls.POST("", middleware.Authorize(guard, "payroll", "create"), middleware.Idempotency(rdb), handler.Create)
		payrolls.PUT("/:id/process", middleware.Authorize(guard, "payroll", "process"), handler.Process)
		payrolls.DELETE("/:id", middleware.Authorize(guard, "payroll", "delete"), handler.Delete)
	}
}
