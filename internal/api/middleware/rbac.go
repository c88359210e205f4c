package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-directory/internal/api/metrics"
	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

// Authorize admits only callers whose role is one of allowedRoles. It must run
// after Protect; a request without a bound identity is rejected with 401.
func Authorize(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			who, ok := IdentityFrom(c)
			if !ok {
				return unauthenticated(errMissingCredential)
			}
			if _, ok := allowed[who.Role]; !ok {
				metrics.AccessDeniedTotal.WithLabelValues("role").Inc()
				msg := fmt.Sprintf("user role %s is not authorized to access this route", who.Role)
				return echo.NewHTTPError(http.StatusForbidden, msg).SetInternal(domain.ErrForbidden)
			}
			return next(c)
		}
	}
}
