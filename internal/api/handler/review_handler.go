package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-directory/internal/api/metrics"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

// ReviewHandler handles HTTP requests for reviews.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// List handles GET /reviews.
//
// @Summary      List reviews
// @Tags         reviews
// @Produce      json
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Page size (default 25, max 100)"
// @Param        sort   query     string  false  "Comma separated fields, '-' prefix for descending"
// @Success      200    {object}  reviewListResponse
// @Router       /reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
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

// ListByBootcamp handles GET /bootcamps/:id/reviews.
//
// @Summary      List the reviews of a bootcamp
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Bootcamp id"
// @Success      200  {object}  reviewListResponse
// @Router       /bootcamps/{id}/reviews [get]
func (h *ReviewHandler) ListByBootcamp(c echo.Context) error {
	items, err := h.service.ListByBootcamp(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respondList(c, items, nil)
}

// Get handles GET /reviews/:reviewId.
//
// @Summary      Get a review
// @Tags         reviews
// @Produce      json
// @Param        reviewId  path      string  true  "Review id"
// @Success      200       {object}  reviewResponse
// @Failure      404       {object}  errorResponse
// @Router       /reviews/{reviewId} [get]
func (h *ReviewHandler) Get(c echo.Context) error {
	r, err := h.service.Get(c.Request().Context(), c.Param("reviewId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, r)
}

// Create handles POST /bootcamps/:id/reviews.
//
// @Summary      Review a bootcamp
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Bootcamp id"
// @Param        body  body      createReviewRequest  true  "Review"
// @Success      200   {object}  reviewResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /bootcamps/{id}/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	who, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req createReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	r, err := h.service.Create(c.Request().Context(), who, c.Param("id"), ports.ReviewInput{
		Title:  req.Title,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		return err
	}
	metrics.ResourceWritesTotal.WithLabelValues("review", "create").Inc()
	return respond(c, http.StatusOK, r)
}

// Update handles PUT /reviews/:reviewId.
//
// @Summary      Update a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        reviewId  path      string               true  "Review id"
// @Param        body      body      updateReviewRequest  true  "Fields to change"
// @Success      200       {object}  reviewResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /reviews/{reviewId} [put]
func (h *ReviewHandler) Update(c echo.Context) error {
	who, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req updateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	r, err := h.service.Update(c.Request().Context(), who, c.Param("reviewId"), req.toPatch())
	if err != nil {
		return err
	}
	metrics.ResourceWritesTotal.WithLabelValues("review", "update").Inc()
	return respond(c, http.StatusOK, r)
}

// Delete handles DELETE /reviews/:reviewId.
//
// @Summary      Delete a review
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        reviewId  path      string  true  "Review id"
// @Success      200       {object}  response
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /reviews/{reviewId} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	who, err := callerIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), who, c.Param("reviewId")); err != nil {
		return err
	}
	metrics.ResourceWritesTotal.WithLabelValues("review", "delete").Inc()
	return respondDeleted(c)
}
