package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-directory/internal/api/metrics"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

// BootcampHandler handles HTTP requests for bootcamps.
type BootcampHandler struct {
	service ports.BootcampService
}

func NewBootcampHandler(service ports.BootcampService) *BootcampHandler {
	return &BootcampHandler{service: service}
}

// List handles GET /bootcamps.
//
// @Summary      List bootcamps
// @Tags         bootcamps
// @Produce      json
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Page size (default 25, max 100)"
// @Param        sort   query     string  false  "Comma separated fields, '-' prefix for descending"
// @Success      200    {object}  bootcampListResponse
// @Failure      400    {object}  errorResponse
// @Router       /bootcamps [get]
func (h *BootcampHandler) List(c echo.Context) error {
	q, err := listQuery(c)
	if err != nil {
		return err
	}
	page, err := h.service.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return respondPage(c, page)
}

// Get handles GET /bootcamps/:id.
//
// @Summary      Get a bootcamp
// @Tags         bootcamps
// @Produce      json
// @Param        id   path      string  true  "Bootcamp id"
// @Success      200  {object}  bootcampResponse
// @Failure      404  {object}  errorResponse
// @Router       /bootcamps/{id} [get]
func (h *BootcampHandler) Get(c echo.Context) error {
	b, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, b)
}

// Create handles POST /bootcamps.
//
// @Summary      Create a bootcamp
// @Tags         bootcamps
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBootcampRequest  true  "Bootcamp"
// @Success      200   {object}  bootcampResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /bootcamps [post]
func (h *BootcampHandler) Create(c echo.Context) error {
	who, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req createBootcampRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	b, err := h.service.Create(c.Request().Context(), who, req.toInput())
	if err != nil {
		return err
	}
	metrics.ResourceWritesTotal.WithLabelValues("bootcamp", "create").Inc()
	return respond(c, http.StatusOK, b)
}

// Update handles PUT /bootcamps/:id.
//
// @Summary      Update a bootcamp
// @Tags         bootcamps
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Bootcamp id"
// @Param        body  body      updateBootcampRequest  true  "Fields to change"
// @Success      200   {object}  bootcampResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /bootcamps/{id} [put]
func (h *BootcampHandler) Update(c echo.Context) error {
	who, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req updateBootcampRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	b, err := h.service.Update(c.Request().Context(), who, c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}
	metrics.ResourceWritesTotal.WithLabelValues("bootcamp", "update").Inc()
	return respond(c, http.StatusOK, b)
}

// Delete handles DELETE /bootcamps/:id. Courses and reviews of the bootcamp
// are removed with it.
//
// @Summary      Delete a bootcamp
// @Tags         bootcamps
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Bootcamp id"
// @Success      200  {object}  response
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /bootcamps/{id} [delete]
func (h *BootcampHandler) Delete(c echo.Context) error {
	who, err := callerIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), who, c.Param("id")); err != nil {
		return err
	}
	metrics.ResourceWritesTotal.WithLabelValues("bootcamp", "delete").Inc()
	return respondDeleted(c)
}

// DeleteAll handles DELETE /bootcamps.
//
// @Summary      Delete every bootcamp
// @Tags         bootcamps
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  deleteAllResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /bootcamps [delete]
func (h *BootcampHandler) DeleteAll(c echo.Context) error {
	who, err := callerIdentity(c)
	if err != nil {
		return err
	}
	n, err := h.service.DeleteAll(c.Request().Context(), who)
	if err != nil {
		return err
	}
	metrics.ResourceWritesTotal.WithLabelValues("bootcamp", "delete").Add(float64(n))
	return c.JSON(http.StatusOK, deleteAllResponse{Success: true, Deleted: n})
}
