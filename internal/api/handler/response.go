package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

// response is the success envelope shared by every resource endpoint.
type response struct {
	Success    bool              `json:"success"`
	Data       any               `json:"data,omitempty"`
	Message    string            `json:"message,omitempty"`
	Count      *int              `json:"count,omitempty"`
	Pagination *ports.Pagination `json:"pagination,omitempty"`
}

// errorResponse is the failure envelope rendered by the HTTP error handler.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, response{Success: true, Data: data})
}

func respondList[T any](c echo.Context, items []T, pagination *ports.Pagination) error {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	return c.JSON(http.StatusOK, response{Success: true, Data: items, Count: &n, Pagination: pagination})
}

func respondPage[T any](c echo.Context, page *ports.Page[T]) error {
	p := page.Pagination()
	return respondList(c, page.Items, &p)
}

func respondDeleted(c echo.Context) error {
	return c.JSON(http.StatusOK, response{Success: true, Data: struct{}{}})
}
