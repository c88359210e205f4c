package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/devcamper/bootcamp-directory/internal/api/handler"
	"github.com/devcamper/bootcamp-directory/internal/api/middleware"
	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

// BasePath prefixes every resource route.
const BasePath = "/api/v1"

// Route is one entry of the route table. Guards run in order before Handler.
type Route struct {
	Method  string
	Path    string
	Handler echo.HandlerFunc
	Guards  []echo.MiddlewareFunc
	Name    string
}

// Handlers groups the resource handlers mounted under BasePath.
type Handlers struct {
	Auth      *handler.AuthHandler
	Bootcamps *handler.BootcampHandler
	Courses   *handler.CourseHandler
	Reviews   *handler.ReviewHandler
}

// Routes returns the route table of the API. Ownership of the addressed
// resource is enforced by the services behind the handlers.
func Routes(h Handlers, verifier ports.TokenVerifier) []Route {
	protect := middleware.Protect(verifier)
	publishers := middleware.Authorize(domain.RolePublisher, domain.RoleAdmin)
	admins := middleware.Authorize(domain.RoleAdmin)
	reviewers := middleware.Authorize(domain.RoleUser, domain.RolePublisher, domain.RoleAdmin)

	guard := func(mw ...echo.MiddlewareFunc) []echo.MiddlewareFunc { return mw }

	return []Route{
		// auth
		{http.MethodPost, "/auth/register", h.Auth.Register, nil, "auth.register"},
		{http.MethodPost, "/auth/login", h.Auth.Login, nil, "auth.login"},
		{http.MethodGet, "/auth/me", h.Auth.Me, guard(protect), "auth.me"},
		{http.MethodPut, "/auth/updatedetails", h.Auth.UpdateDetails, guard(protect), "auth.updatedetails"},
		{http.MethodPut, "/auth/updatepassword", h.Auth.UpdatePassword, guard(protect), "auth.updatepassword"},
		{http.MethodPost, "/auth/forgotpassword", h.Auth.ForgotPassword, nil, "auth.forgotpassword"},
		{http.MethodPut, "/auth/resetpassword/:resettoken", h.Auth.ResetPassword, nil, "auth.resetpassword"},
		{http.MethodGet, "/auth/logout", h.Auth.Logout, guard(protect), "auth.logout"},

		// bootcamps
		{http.MethodGet, "/bootcamps", h.Bootcamps.List, nil, "bootcamps.list"},
		{http.MethodPost, "/bootcamps", h.Bootcamps.Create, guard(protect, publishers), "bootcamps.create"},
		{http.MethodDelete, "/bootcamps", h.Bootcamps.DeleteAll, guard(protect, admins), "bootcamps.deleteall"},
		{http.MethodGet, "/bootcamps/:id", h.Bootcamps.Get, nil, "bootcamps.get"},
		{http.MethodPut, "/bootcamps/:id", h.Bootcamps.Update, guard(protect, publishers), "bootcamps.update"},
		{http.MethodDelete, "/bootcamps/:id", h.Bootcamps.Delete, guard(protect, publishers), "bootcamps.delete"},

		// courses
		{http.MethodGet, "/courses", h.Courses.List, nil, "courses.list"},
		{http.MethodGet, "/courses/:courseId", h.Courses.Get, nil, "courses.get"},
		{http.MethodPut, "/courses/:courseId", h.Courses.Update, guard(protect), "courses.update"},
		{http.MethodDelete, "/courses/:courseId", h.Courses.Delete, guard(protect), "courses.delete"},
		{http.MethodGet, "/bootcamps/:id/courses", h.Courses.ListByBootcamp, nil, "bootcamps.courses.list"},
		{http.MethodPost, "/bootcamps/:id/courses", h.Courses.Create, guard(protect), "bootcamps.courses.create"},
		{http.MethodGet, "/bootcamps/:id/courses/:courseId", h.Courses.GetInBootcamp, nil, "bootcamps.courses.get"},

		// reviews
		{http.MethodGet, "/reviews", h.Reviews.List, nil, "reviews.list"},
		{http.MethodGet, "/reviews/:reviewId", h.Reviews.Get, nil, "reviews.get"},
		{http.MethodPut, "/reviews/:reviewId", h.Reviews.Update, guard(protect, reviewers), "reviews.update"},
		{http.MethodDelete, "/reviews/:reviewId", h.Reviews.Delete, guard(protect, reviewers), "reviews.delete"},
		{http.MethodGet, "/bootcamps/:id/reviews", h.Reviews.ListByBootcamp, nil, "bootcamps.reviews.list"},
		{http.MethodPost, "/bootcamps/:id/reviews", h.Reviews.Create, guard(protect, reviewers), "bootcamps.reviews.create"},
	}
}

// Deps is everything NewRouter needs to assemble the server.
type Deps struct {
	Handlers Handlers
	Verifier ports.TokenVerifier
	Probes   map[string]handler.Probe
	Logger   zerolog.Logger

	// Registerer and Gatherer back the HTTP metrics. Nil means the
	// Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.JSONSerializer = jsonSerializer{}
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "devcamper",
		Registerer: d.Registerer,
		Skipper:    operational,
	}))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Probes)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API ---
	g := e.Group(BasePath)
	for _, r := range Routes(d.Handlers, d.Verifier) {
		g.Add(r.Method, r.Path, r.Handler, r.Guards...).Name = r.Name
	}

	return e
}

func operational(c echo.Context) bool {
	p := c.Path()
	return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper:      operational,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
