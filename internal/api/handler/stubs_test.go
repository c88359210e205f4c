package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-directory/internal/api/middleware"
	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

type verifierFunc func(ctx context.Context, raw string) (*domain.Identity, error)

func (f verifierFunc) Verify(ctx context.Context, raw string) (*domain.Identity, error) {
	return f(ctx, raw)
}

// as wraps h in the access guard with a verifier that always resolves to who.
func as(who domain.Identity, h echo.HandlerFunc) echo.HandlerFunc {
	return middleware.Protect(verifierFunc(func(context.Context, string) (*domain.Identity, error) {
		return &who, nil
	}))(h)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newContext builds a request context carrying a bearer token. Path params
// are given as name, value pairs.
func newContext(e *echo.Echo, method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer test-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func httpCode(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}

var (
	alice = domain.Identity{ID: "alice", Role: domain.RolePublisher}
	carol = domain.Identity{ID: "carol", Role: domain.RoleUser}
)

// ---------------------------------------------------------------------------

type stubAuthService struct {
	registerFn       func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn          func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	meFn             func(ctx context.Context, who domain.Identity) (*domain.User, error)
	updateDetailsFn  func(ctx context.Context, who domain.Identity, patch ports.UserPatch) (*domain.User, error)
	updatePasswordFn func(ctx context.Context, who domain.Identity, current, next string) (*ports.AuthResult, error)
	forgotFn         func(ctx context.Context, email string) error
	resetFn          func(ctx context.Context, raw, password string) (*ports.AuthResult, error)
	logoutFn         func(ctx context.Context, who domain.Identity) error
}

func (s *stubAuthService) Verify(context.Context, string) (*domain.Identity, error) {
	return nil, domain.ErrUnauthenticated
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(ctx context.Context, who domain.Identity) (*domain.User, error) {
	return s.meFn(ctx, who)
}

func (s *stubAuthService) UpdateDetails(ctx context.Context, who domain.Identity, patch ports.UserPatch) (*domain.User, error) {
	return s.updateDetailsFn(ctx, who, patch)
}

func (s *stubAuthService) UpdatePassword(ctx context.Context, who domain.Identity, current, next string) (*ports.AuthResult, error) {
	return s.updatePasswordFn(ctx, who, current, next)
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.forgotFn(ctx, email)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, raw, password string) (*ports.AuthResult, error) {
	return s.resetFn(ctx, raw, password)
}

func (s *stubAuthService) Logout(ctx context.Context, who domain.Identity) error {
	return s.logoutFn(ctx, who)
}

// ---------------------------------------------------------------------------

type stubBootcampService struct {
	listFn      func(ctx context.Context, q ports.ListQuery) (*ports.Page[*domain.Bootcamp], error)
	getFn       func(ctx context.Context, id string) (*domain.Bootcamp, error)
	createFn    func(ctx context.Context, who domain.Identity, in ports.BootcampInput) (*domain.Bootcamp, error)
	updateFn    func(ctx context.Context, who domain.Identity, id string, p ports.BootcampPatch) (*domain.Bootcamp, error)
	deleteFn    func(ctx context.Context, who domain.Identity, id string) error
	deleteAllFn func(ctx context.Context, who domain.Identity) (int64, error)
}

func (s *stubBootcampService) List(ctx context.Context, q ports.ListQuery) (*ports.Page[*domain.Bootcamp], error) {
	return s.listFn(ctx, q)
}

func (s *stubBootcampService) Get(ctx context.Context, id string) (*domain.Bootcamp, error) {
	return s.getFn(ctx, id)
}

func (s *stubBootcampService) Create(ctx context.Context, who domain.Identity, in ports.BootcampInput) (*domain.Bootcamp, error) {
	return s.createFn(ctx, who, in)
}

func (s *stubBootcampService) Update(ctx context.Context, who domain.Identity, id string, p ports.BootcampPatch) (*domain.Bootcamp, error) {
	return s.updateFn(ctx, who, id, p)
}

func (s *stubBootcampService) Delete(ctx context.Context, who domain.Identity, id string) error {
	return s.deleteFn(ctx, who, id)
}

func (s *stubBootcampService) DeleteAll(ctx context.Context, who domain.Identity) (int64, error) {
	return s.deleteAllFn(ctx, who)
}

// ---------------------------------------------------------------------------

type stubCourseService struct {
	listFn          func(ctx context.Context, q ports.ListQuery) (*ports.Page[*domain.Course], error)
	listByBootcamp  func(ctx context.Context, bootcampID string) ([]*domain.Course, error)
	getFn           func(ctx context.Context, id string) (*domain.Course, error)
	getInBootcampFn func(ctx context.Context, bootcampID, id string) (*domain.Course, error)
	createFn        func(ctx context.Context, who domain.Identity, bootcampID string, in ports.CourseInput) (*domain.Course, error)
	updateFn        func(ctx context.Context, who domain.Identity, id string, p ports.CoursePatch) (*domain.Course, error)
	deleteFn        func(ctx context.Context, who domain.Identity, id string) error
}

func (s *stubCourseService) List(ctx context.Context, q ports.ListQuery) (*ports.Page[*domain.Course], error) {
	return s.listFn(ctx, q)
}

func (s *stubCourseService) ListByBootcamp(ctx context.Context, bootcampID string) ([]*domain.Course, error) {
	return s.listByBootcamp(ctx, bootcampID)
}

func (s *stubCourseService) Get(ctx context.Context, id string) (*domain.Course, error) {
	return s.getFn(ctx, id)
}

func (s *stubCourseService) GetInBootcamp(ctx context.Context, bootcampID, id string) (*domain.Course, error) {
	return s.getInBootcampFn(ctx, bootcampID, id)
}

func (s *stubCourseService) Create(ctx context.Context, who domain.Identity, bootcampID string, in ports.CourseInput) (*domain.Course, error) {
	return s.createFn(ctx, who, bootcampID, in)
}

func (s *stubCourseService) Update(ctx context.Context, who domain.Identity, id string, p ports.CoursePatch) (*domain.Course, error) {
	return s.updateFn(ctx, who, id, p)
}

func (s *stubCourseService) Delete(ctx context.Context, who domain.Identity, id string) error {
	return s.deleteFn(ctx, who, id)
}

// ---------------------------------------------------------------------------

type stubReviewService struct {
	listFn         func(ctx context.Context, q ports.ListQuery) (*ports.Page[*domain.Review], error)
	listByBootcamp func(ctx context.Context, bootcampID string) ([]*domain.Review, error)
	getFn          func(ctx context.Context, id string) (*domain.Review, error)
	createFn       func(ctx context.Context, who domain.Identity, bootcampID string, in ports.ReviewInput) (*domain.Review, error)
	updateFn       func(ctx context.Context, who domain.Identity, id string, p ports.ReviewPatch) (*domain.Review, error)
	deleteFn       func(ctx context.Context, who domain.Identity, id string) error
}

func (s *stubReviewService) List(ctx context.Context, q ports.ListQuery) (*ports.Page[*domain.Review], error) {
	return s.listFn(ctx, q)
}

func (s *stubReviewService) ListByBootcamp(ctx context.Context, bootcampID string) ([]*domain.Review, error) {
	return s.listByBootcamp(ctx, bootcampID)
}

func (s *stubReviewService) Get(ctx context.Context, id string) (*domain.Review, error) {
	return s.getFn(ctx, id)
}

func (s *stubReviewService) Create(ctx context.Context, who domain.Identity, bootcampID string, in ports.ReviewInput) (*domain.Review, error) {
	return s.createFn(ctx, who, bootcampID, in)
}

func (s *stubReviewService) Update(ctx context.Context, who domain.Identity, id string, p ports.ReviewPatch) (*domain.Review, error) {
	return s.updateFn(ctx, who, id, p)
}

func (s *stubReviewService) Delete(ctx context.Context, who domain.Identity, id string) error {
	return s.deleteFn(ctx, who, id)
}

