package employee

import (
	"go-payroll/internal/access"
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	guard access.Guard,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.Authorize(guard, "employee", "list"), handler.GetAll)
		employees.GET("/options", middleware.Authorize(guard, "employee", "read"), handler.GetOptions)
		employees.GET("/me", middleware.Authorize(guard, "employee", "read"), middleware.ExtractUserID(), handler.GetMe)
		employees.GET("/:id", middleware.Authorize(guard, "employee", "read"), middleware.RequireSelfOrAdmin(guard, "id"), handler.GetById)
		employees.POST("", middleware.Authorize(guard, "employee", "create"), handler.Create)
		employees.PUT("/:id", middleware.Authorize(guard, "employee", "update"), handler.Update)
		employees.POST("/:id/credit-leave", middleware.Authorize(guard, "employee", "update"), handler.CreditLeave)
		employees.DELETE("/:id", middleware.Authorize(guard, "employee", "delete"), handler.Delete)
	}
}
