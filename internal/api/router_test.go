package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-directory/internal/api/handler"
	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

type tokenTable map[string]domain.Identity

func (t tokenTable) Verify(_ context.Context, raw string) (*domain.Identity, error) {
	who, ok := t[raw]
	if !ok {
		return nil, fmt.Errorf("%w: unknown token", domain.ErrUnauthenticated)
	}
	return &who, nil
}

var tokens = tokenTable{
	"alice-token": {ID: "alice", Role: domain.RolePublisher},
	"bob-token":   {ID: "bob", Role: domain.RolePublisher},
	"carol-token": {ID: "carol", Role: domain.RoleUser},
	"root-token":  {ID: "root", Role: domain.RoleAdmin},
}

// bootcampStore is a BootcampService holding one bootcamp owned by alice.
type bootcampStore struct {
	writes int
}

func (s *bootcampStore) List(_ context.Context, q ports.ListQuery) (*ports.Page[*domain.Bootcamp], error) {
	return &ports.Page[*domain.Bootcamp]{Items: []*domain.Bootcamp{s.b1()}, Total: 1, Query: q}, nil
}

func (s *bootcampStore) Get(_ context.Context, id string) (*domain.Bootcamp, error) {
	if id != "b1" {
		return nil, domain.ErrBootcampNotFound
	}
	return s.b1(), nil
}

func (s *bootcampStore) Create(_ context.Context, who domain.Identity, in ports.BootcampInput) (*domain.Bootcamp, error) {
	s.writes++
	return &domain.Bootcamp{ID: "b2", Name: in.Name, User: who.ID}, nil
}

func (s *bootcampStore) Update(_ context.Context, who domain.Identity, id string, _ ports.BootcampPatch) (*domain.Bootcamp, error) {
	b, err := s.Get(context.Background(), id)
	if err != nil {
		return nil, err
	}
	if domain.CheckOwnership(b, who) != domain.Allow {
		return nil, fmt.Errorf("user %s is not authorized to update bootcamp %s: %w", who.ID, id, domain.ErrForbidden)
	}
	s.writes++
	return b, nil
}

func (s *bootcampStore) Delete(context.Context, domain.Identity, string) error { return nil }

func (s *bootcampStore) DeleteAll(context.Context, domain.Identity) (int64, error) { return 0, nil }

func (s *bootcampStore) b1() *domain.Bootcamp {
	return &domain.Bootcamp{ID: "b1", Name: "Devworks", User: "alice"}
}

func newTestRouter(t *testing.T) (*echo.Echo, *bootcampStore) {
	t.Helper()
	store := &bootcampStore{}
	reg := prometheus.NewRegistry()
	e := NewRouter(Deps{
		Handlers: Handlers{
			Auth:      handler.NewAuthHandler(nil, handler.CookieOptions{}),
			Bootcamps: handler.NewBootcampHandler(store),
			Courses:   handler.NewCourseHandler(nil),
			Reviews:   handler.NewReviewHandler(nil),
		},
		Verifier:   tokens,
		Probes:     map[string]handler.Probe{},
		Logger:     zerolog.Nop(),
		Registerer: reg,
		Gatherer:   reg,
	})
	return e, store
}

func do(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func expectBody(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Fatalf("expected body %s, got %s", want, got)
	}
}

func expectBodyContains(t *testing.T, rec *httptest.ResponseRecorder, fragment string) {
	t.Helper()
	if !strings.Contains(rec.Body.String(), fragment) {
		t.Fatalf("expected body to contain %q, got %s", fragment, rec.Body.String())
	}
}

func TestRoutes_WritesAreGuarded(t *testing.T) {
	public := map[string]bool{
		"auth.register":       true,
		"auth.login":          true,
		"auth.forgotpassword": true,
		"auth.resetpassword":  true,
	}

	for _, r := range Routes(Handlers{}, tokens) {
		if r.Method == http.MethodGet {
			continue
		}
		if public[r.Name] {
			if len(r.Guards) != 0 {
				t.Fatalf("%s %s should be public", r.Method, r.Path)
			}
			continue
		}
		if len(r.Guards) == 0 {
			t.Fatalf("%s %s must be guarded", r.Method, r.Path)
		}
	}
}

func TestRoutes_NamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Routes(Handlers{}, tokens) {
		if seen[r.Name] {
			t.Fatalf("duplicate route name %s", r.Name)
		}
		seen[r.Name] = true
	}
}

func TestRouter_UnauthenticatedWriteIsRejected(t *testing.T) {
	e, store := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/v1/bootcamps", "", `{"name":"X","description":"d","careers":["Business"]}`)

	expectStatus(t, rec, http.StatusUnauthorized)
	expectBody(t, rec, `{"success":false,"error":"not authorized to access this route"}`)
	if store.writes != 0 {
		t.Fatalf("expected no writes, got %d", store.writes)
	}
}

func TestRouter_UnknownTokenIsRejected(t *testing.T) {
	e, _ := newTestRouter(t)

	expectStatus(t, do(e, http.MethodGet, "/api/v1/auth/me", "forged", ""), http.StatusUnauthorized)
}

func TestRouter_RoleIsEnforced(t *testing.T) {
	e, store := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/v1/bootcamps", "carol-token", `{"name":"X","description":"d","careers":["Business"]}`)

	expectStatus(t, rec, http.StatusForbidden)
	expectBodyContains(t, rec, "user role user is not authorized")
	if store.writes != 0 {
		t.Fatalf("expected no writes, got %d", store.writes)
	}
}

func TestRouter_OwnershipIsEnforced(t *testing.T) {
	e, store := newTestRouter(t)

	rec := do(e, http.MethodPut, "/api/v1/bootcamps/b1", "bob-token", `{"housing":true}`)
	expectStatus(t, rec, http.StatusForbidden)
	expectBodyContains(t, rec, `"success":false`)
	if store.writes != 0 {
		t.Fatalf("stranger must not write, got %d writes", store.writes)
	}

	expectStatus(t, do(e, http.MethodPut, "/api/v1/bootcamps/b1", "alice-token", `{"housing":true}`), http.StatusOK)
	expectStatus(t, do(e, http.MethodPut, "/api/v1/bootcamps/b1", "root-token", `{"housing":true}`), http.StatusOK)
	if store.writes != 2 {
		t.Fatalf("expected 2 writes, got %d", store.writes)
	}
}

func TestRouter_PublicReads(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodGet, "/api/v1/bootcamps/b1", "", "")
	expectStatus(t, rec, http.StatusOK)
	expectBodyContains(t, rec, `"id":"b1"`)

	rec = do(e, http.MethodGet, "/api/v1/bootcamps", "", "")
	expectStatus(t, rec, http.StatusOK)
	expectBodyContains(t, rec, `"count":1`)
}

func TestRouter_UnknownBootcampIsPublicNotFound(t *testing.T) {
	e, _ := newTestRouter(t)

	for _, r := range Routes(Handlers{}, tokens) {
		if r.Name == "bootcamps.get" && len(r.Guards) != 0 {
			t.Fatalf("%s %s must not be guarded", r.Method, r.Path)
		}
	}

	for _, id := range []string{"123", "missing", "000000000000000000000000"} {
		rec := do(e, http.MethodGet, "/api/v1/bootcamps/"+id, "", "")
		expectStatus(t, rec, http.StatusNotFound)
		expectBody(t, rec, `{"success":false,"error":"bootcamp not found"}`)
	}
}

func TestRouter_CreateUsesCaller(t *testing.T) {
	e, store := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/v1/bootcamps", "alice-token", `{"name":"New","description":"d","careers":["Business"]}`)

	expectStatus(t, rec, http.StatusOK)
	expectBodyContains(t, rec, `"user":"alice"`)
	if store.writes != 1 {
		t.Fatalf("expected 1 write, got %d", store.writes)
	}
}

func TestRouter_ValidationAndMalformedBody(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/v1/bootcamps", "alice-token", `{"description":"d","careers":["Business"]}`)
	expectStatus(t, rec, http.StatusBadRequest)
	expectBodyContains(t, rec, "name is required")

	expectStatus(t, do(e, http.MethodPost, "/api/v1/bootcamps", "alice-token", `{"name":`), http.StatusBadRequest)
}

func TestRouter_Operational(t *testing.T) {
	e, _ := newTestRouter(t)

	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		expectStatus(t, do(e, http.MethodGet, path, "", ""), http.StatusOK)
	}

	rec := do(e, http.MethodGet, "/api/v1/nowhere", "", "")
	expectStatus(t, rec, http.StatusNotFound)
	expectBodyContains(t, rec, `"success":false`)
}
