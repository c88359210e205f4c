package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

func TestCourseHandler_Create_ForwardsBootcampAndCaller(t *testing.T) {
	e := newEcho()
	stub := &stubCourseService{
		createFn: func(_ context.Context, who domain.Identity, bootcampID string, in ports.CourseInput) (*domain.Course, error) {
			if bootcampID != "b1" {
				t.Fatalf("expected bootcamp b1, got %q", bootcampID)
			}
			if who.ID != alice.ID {
				t.Fatalf("expected caller alice, got %q", who.ID)
			}
			if in.MinimumSkill != domain.SkillIntermediate || in.Weeks != 12 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Course{ID: "c1", Title: in.Title, Bootcamp: bootcampID, User: who.ID}, nil
		},
	}
	h := NewCourseHandler(stub)

	body := `{"title":"Full Stack","description":"JS","weeks":12,"tuition":8000,"minimum_skill":"intermediate"}`
	c, rec := newContext(e, http.MethodPost, "/api/v1/bootcamps/b1/courses", body, "id", "b1")
	if err := as(alice, h.Create)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data domain.Course `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Data.Bootcamp != "b1" || resp.Data.User != "alice" {
		t.Fatalf("unexpected course: %+v", resp.Data)
	}
}

func TestCourseHandler_Create_WithoutIdentity(t *testing.T) {
	e := newEcho()
	called := false
	stub := &stubCourseService{
		createFn: func(context.Context, domain.Identity, string, ports.CourseInput) (*domain.Course, error) {
			called = true
			return nil, nil
		},
	}
	h := NewCourseHandler(stub)

	c, _ := newContext(e, http.MethodPost, "/api/v1/bootcamps/b1/courses", `{}`, "id", "b1")
	if code := httpCode(h.Create(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if called {
		t.Fatalf("service must not be reached without an identity")
	}
}

func TestCourseHandler_Create_InvalidSkill(t *testing.T) {
	e := newEcho()
	h := NewCourseHandler(&stubCourseService{})

	body := `{"title":"T","description":"D","weeks":4,"tuition":100,"minimum_skill":"expert"}`
	c, _ := newContext(e, http.MethodPost, "/api/v1/bootcamps/b1/courses", body, "id", "b1")
	if err := as(alice, h.Create)(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCourseHandler_Update_ForbiddenPropagates(t *testing.T) {
	e := newEcho()
	stub := &stubCourseService{
		updateFn: func(_ context.Context, _ domain.Identity, id string, p ports.CoursePatch) (*domain.Course, error) {
			if id != "c1" || p.Tuition == nil || *p.Tuition != 1 {
				t.Fatalf("unexpected update %q %+v", id, p)
			}
			return nil, domain.ErrForbidden
		},
	}
	h := NewCourseHandler(stub)

	c, _ := newContext(e, http.MethodPut, "/api/v1/courses/c1", `{"tuition":1}`, "courseId", "c1")
	if err := as(carol, h.Update)(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCourseHandler_ListByBootcamp_EmptyIsArray(t *testing.T) {
	e := newEcho()
	stub := &stubCourseService{
		listByBootcamp: func(context.Context, string) ([]*domain.Course, error) {
			return nil, nil
		},
	}
	h := NewCourseHandler(stub)

	c, rec := newContext(e, http.MethodGet, "/api/v1/bootcamps/b1/courses", "", "id", "b1")
	if err := h.ListByBootcamp(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "{\"success\":true,\"data\":[],\"count\":0}\n" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestCourseHandler_GetInBootcamp_NotFound(t *testing.T) {
	e := newEcho()
	stub := &stubCourseService{
		getInBootcampFn: func(_ context.Context, bootcampID, id string) (*domain.Course, error) {
			if bootcampID != "b2" || id != "c1" {
				t.Fatalf("unexpected params %q %q", bootcampID, id)
			}
			return nil, domain.ErrCourseNotFound
		},
	}
	h := NewCourseHandler(stub)

	c, _ := newContext(e, http.MethodGet, "/api/v1/bootcamps/b2/courses/c1", "", "id", "b2", "courseId", "c1")
	if err := h.GetInBootcamp(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
