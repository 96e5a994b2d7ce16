package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/esgview/admin-gateway/internal/core/ports"
)

// SessionGate rejects requests while the gateway session is anonymous and
// injects the current identity into the request context.
func SessionGate(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			snap := sessions.Snapshot()
			if !snap.Authenticated {
				return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
			}
			if snap.User != nil {
				c.Set("username", snap.User.Username)
				c.Set("role", snap.User.Role)
			}
			return next(c)
		}
	}
}

// RoleGate enforces role-based access control on top of SessionGate.
func RoleGate(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
