package leave

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
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", middleware.Authorize(guard, "leave", "list"), handler.GetAll)
		leaves.GET("/pending", middleware.Authorize(guard, "leave", "list"), handler.GetPending)
		leaves.GET("/employee/:employeeId", middleware.Authorize(guard, "leave", "read"), middleware.RequireSelfOrAdmin(guard, "employeeId"), handler.GetByEmployee)
		leaves.GET("/:id", middleware.Authorize(guard, "leave", "read"), middleware.RequireLeaveOwnerOrAdmin(guard), handler.GetById)
		leaves.POST("", middleware.Authorize(guard, "leave", "create"), handler.Submit)
		leaves.PUT("/:id/decision", middleware.Authorize(guard, "leave", "decide"), handler.Decide)
		leaves.DELETE("/:id", middleware.Authorize(guard, "leave", "delete"), handler.Delete)
	}
}
