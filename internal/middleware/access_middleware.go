package middleware

import (
	"net/http"

	"go-payroll/internal/access"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorize consults the access guard's role policy before any core operation
// runs. The core itself performs no authorization.
func Authorize(guard access.Guard, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := guard.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				resource+":"+action,
			)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSelfOrAdmin restricts a route keyed by an employee id path param to
// admins or the employee themselves.
func RequireSelfOrAdmin(guard access.Guard, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if guard.IsAdmin(role) {
			c.Next()
			return
		}

		if guard.OwnsEmployee(c.Request.Context(), c.GetString("employee_id"), c.Param(param)) {
			c.Next()
			return
		}

		response.Error(c, http.StatusForbidden, "FORBIDDEN",
			"You can only access your own records", nil)
		c.Abort()
	}
}

// RequireLeaveOwnerOrAdmin restricts a leave route keyed by ":id" to admins or
// the employee the request belongs to.
func RequireLeaveOwnerOrAdmin(guard access.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if guard.IsAdmin(role) {
			c.Next()
			return
		}

		owns, err := guard.OwnsLeave(c.Request.Context(), c.GetString("employee_id"), c.Param("id"))
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
			c.Abort()
			return
		}
		if !owns {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You can only access your own leave requests", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePayrollOwnerOrAdmin restricts a payroll route keyed by ":id" to
// admins or the employee the record belongs to.
func RequirePayrollOwnerOrAdmin(guard access.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if guard.IsAdmin(role) {
			c.Next()
			return
		}

		owns, err := guard.OwnsPayroll(c.Request.Context(), c.GetString("employee_id"), c.Param("id"))
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
			c.Abort()
			return
		}
		if !owns {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You can only access your own payroll records", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
