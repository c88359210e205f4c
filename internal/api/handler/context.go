package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-directory/internal/api/middleware"
	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

// callerIdentity returns the identity bound by the access guard. A handler
// mounted without the guard gets a 401 instead of acting for nobody.
func callerIdentity(c echo.Context) (domain.Identity, error) {
	who, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
	}
	return who, nil
}

// bindAndValidate decodes the request body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
	}
	return c.Validate(req)
}
