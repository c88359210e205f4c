package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-directory/internal/api/metrics"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

// CourseHandler handles HTTP requests for courses.
type CourseHandler struct {
	service ports.CourseService
}

func NewCourseHandler(service ports.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// List handles GET /courses.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Page size (default 25, max 100)"
// @Param        sort   query     string  false  "Comma separated fields, '-' prefix for descending"
// @Success      200    {object}  courseListResponse
// @Router       /courses [get]
func (h *CourseHandler) List(c echo.Context) error {
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

// ListByBootcamp handles GET /bootcamps/:id/courses.
//
// @Summary      List the courses of a bootcamp
// @Tags         courses
// @Produce      json
// @Param        id   path      string  true  "Bootcamp id"
// @Success      200  {object}  courseListResponse
// @Router       /bootcamps/{id}/courses [get]
func (h *CourseHandler) ListByBootcamp(c echo.Context) error {
	items, err := h.service.ListByBootcamp(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respondList(c, items, nil)
}

// Get handles GET /courses/:courseId.
//
// @Summary      Get a course
// @Tags         courses
// @Produce      json
// @Param        courseId  path      string  true  "Course id"
// @Success      200       {object}  courseResponse
// @Failure      404       {object}  errorResponse
// @Router       /courses/{courseId} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	course, err := h.service.Get(c.Request().Context(), c.Param("courseId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, course)
}

// GetInBootcamp handles GET /bootcamps/:id/courses/:courseId.
//
// @Summary      Get a course of a bootcamp
// @Tags         courses
// @Produce      json
// @Param        id        path      string  true  "Bootcamp id"
// @Param        courseId  path      string  true  "Course id"
// @Success      200       {object}  courseResponse
// @Failure      404       {object}  errorResponse
// @Router       /bootcamps/{id}/courses/{courseId} [get]
func (h *CourseHandler) GetInBootcamp(c echo.Context) error {
	course, err := h.service.GetInBootcamp(c.Request().Context(), c.Param("id"), c.Param("courseId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, course)
}

// Create handles POST /bootcamps/:id/courses. The caller must own the
// bootcamp.
//
// @Summary      Add a course to a bootcamp
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Bootcamp id"
// @Param        body  body      createCourseRequest  true  "Course"
// @Success      200   {object}  courseResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /bootcamps/{id}/courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	who, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req createCourseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	course, err := h.service.Create(c.Request().Context(), who, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	metrics.ResourceWritesTotal.WithLabelValues("course", "create").Inc()
	return respond(c, http.StatusOK, course)
}

// Update handles PUT /courses/:courseId.
//
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        courseId  path      string               true  "Course id"
// @Param        body      body      updateCourseRequest  true  "Fields to change"
// @Success      200       {object}  courseResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /courses/{courseId} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	who, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req updateCourseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	course, err := h.service.Update(c.Request().Context(), who, c.Param("courseId"), req.toPatch())
	if err != nil {
		return err
	}
	metrics.ResourceWritesTotal.WithLabelValues("course", "update").Inc()
	return respond(c, http.StatusOK, course)
}

// Delete handles DELETE /courses/:courseId.
//
// @Summary      Delete a course
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        courseId  path      string  true  "Course id"
// @Success      200       {object}  response
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /courses/{courseId} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	who, err := callerIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), who, c.Param("courseId")); err != nil {
		return err
	}
	metrics.ResourceWritesTotal.WithLabelValues("course", "delete").Inc()
	return respondDeleted(c)
}
