package jobrole

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
	jobroles := r.Group("/jobroles")
	jobroles.Use(middleware.AuthMiddleware())
	{
		jobroles.GET("", middleware.Authorize(guard, "jobrole", "read"), handler.GetAll)
		jobroles.POST("", middleware.Authorize(guard, "jobrole", "create"), handler.Create)
		jobroles.GET("/:id", middleware.Authorize(guard, "jobrole", "read"), handler.GetById)
		jobroles.PUT("/:id", middleware.Authorize(guard, "jobrole", "update"), handler.Update)
		jobroles.DELETE("/:id", middleware.Authorize(guard, "jobrole", "delete"), handler.Delete)
	}
}
