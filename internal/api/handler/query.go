package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

// listQuery reads page, limit and sort from the query string.
func listQuery(c echo.Context) (ports.ListQuery, error) {
	var q ports.ListQuery
	err := echo.QueryParamsBinder(c).
		Int("page", &q.Page).
		Int("limit", &q.Limit).
		String("sort", &q.Sort).
		BindError()
	if err != nil {
		return q, echo.NewHTTPError(http.StatusBadRequest, "page and limit must be integers").SetInternal(err)
	}
	return q.Normalize(), nil
}
