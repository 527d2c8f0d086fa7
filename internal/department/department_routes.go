package department

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
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("", middleware.Authorize(guard, "department", "read"), handler.GetAll)
		departments.POST("", middleware.Authorize(guard, "department", "create"), handler.Create)
		departments.GET("/:id", middleware.Authorize(guard, "department", "read"), handler.GetById)
		departments.PUT("/:id", middleware.Authorize(guard, "department", "update"), handler.Update)
		departments.DELETE("/:id", middleware.Authorize(guard, "department", "delete"), handler.Delete)
	}
}
