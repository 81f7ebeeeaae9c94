package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/quizdeck/quiz-api/internal/core/domain"
	"github.com/quizdeck/quiz-api/internal/core/token"
	"github.com/quizdeck/quiz-api/internal/problem"
)

type stubQuizService struct {
	quiz *domain.Quiz
	err  error

	gotClaims *token.UserClaims
	gotID     uuid.UUID
}

func (s *stubQuizService) Create(_ context.Context, claims *token.UserClaims, quiz *domain.Quiz) (*domain.Quiz, error) {
	s.gotClaims = claims
	if s.err != nil {
		return nil, s.err
	}
	return quiz, nil
}

func (s *stubQuizService) Get(_ context.Context, id uuid.UUID) (*domain.Quiz, error) {
	s.gotID = id
	return s.quiz, s.err
}

func (s *stubQuizService) Delete(_ context.Context, claims *token.UserClaims, id uuid.UUID) error {
	s.gotClaims, s.gotID = claims, id
	return s.err
}

func withClaims(c echo.Context, roles ...domain.Role) *token.UserClaims {
	claims := &token.UserClaims{User: uuid.New(), Roles: roles}
	c.Set("auth_claims", claims)
	return claims
}

func TestQuizHandler_Create(t *testing.T) {
	svc := &stubQuizService{}
	h := NewQuizHandler(svc)

	c, rec := jsonContext(t, http.MethodPost, "/quiz",
		`{"name":"Geometry","description":"Angles and shapes","time_limit":600}`)
	claims := withClaims(c, domain.RoleAuthor)

	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if svc.gotClaims != claims {
		t.Fatalf("claims not forwarded to the service")
	}
	if !strings.Contains(rec.Body.String(), `"name":"Geometry"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestQuizHandler_CreateWithoutClaims(t *testing.T) {
	h := NewQuizHandler(&stubQuizService{})

	c, _ := jsonContext(t, http.MethodPost, "/quiz", `{"name":"Geometry"}`)
	err := h.Create(c)
	p := asProblem(t, err, 401, "authorization failure")
	if p.Detail() != "Missing authentication claims." {
		t.Fatalf("detail = %q", p.Detail())
	}
}

func TestQuizHandler_CreateMalformedBody(t *testing.T) {
	h := NewQuizHandler(&stubQuizService{})

	c, _ := jsonContext(t, http.MethodPost, "/quiz", `{broken`)
	withClaims(c, domain.RoleAuthor)
	asProblem(t, h.Create(c), 400, "parsing problem")
}

func TestQuizHandler_Get(t *testing.T) {
	id := uuid.New()
	svc := &stubQuizService{quiz: &domain.Quiz{ID: id, Name: "Geometry"}}
	h := NewQuizHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	if err := h.Get(c); err != nil {
		t.Fatalf("get: %v", err)
	}
	if svc.gotID != id {
		t.Fatalf("service got id %s, want %s", svc.gotID, id)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestQuizHandler_GetBadID(t *testing.T) {
	h := NewQuizHandler(&stubQuizService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.Get(c)
	p := asProblem(t, err, 400, "parsing problem")
	if p.Detail() != "UUID parsing failed." {
		t.Fatalf("detail = %q", p.Detail())
	}
	if parsed, _ := p.Field("parsed"); parsed != "not-a-uuid" {
		t.Fatalf("parsed field = %v", parsed)
	}
}

func TestQuizHandler_Delete(t *testing.T) {
	id := uuid.New()
	svc := &stubQuizService{}
	h := NewQuizHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	withClaims(c, domain.RoleAuthor)

	if err := h.Delete(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if svc.gotID != id {
		t.Fatalf("service got id %s, want %s", svc.gotID, id)
	}
	if !strings.Contains(rec.Body.String(), id.String()) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestQuizHandler_DeleteServiceProblemPassthrough(t *testing.T) {
	h := NewQuizHandler(&stubQuizService{
		err: problem.AuthorizationFailure("Quiz not owned by user."),
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())
	withClaims(c, domain.RoleAuthor)

	asProblem(t, h.Delete(c), 401, "authorization failure")
}
