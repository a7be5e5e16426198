package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Mirieri/nikonangombeghani-api/internal/api/middleware"
	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

type stubUserService struct {
	users   map[int64]*domain.User
	patches []domain.UserPatch
}

func newStubUserService() *stubUserService {
	return &stubUserService{users: map[int64]*domain.User{
		1: {ID: 1, Username: "admin", Role: domain.RoleAdmin, Status: domain.UserActive},
		2: {ID: 2, Username: "amina", Role: domain.RoleFarmer, Status: domain.UserActive},
		3: {ID: 3, Username: "baraka", Role: domain.RoleClient, Status: domain.UserActive},
	}}
}

func (s *stubUserService) Create(_ context.Context, in domain.UserCreate) (*domain.User, error) {
	for _, u := range s.users {
		if u.Username == in.Username {
			return nil, domain.ErrIntegrity
		}
	}
	u := &domain.User{ID: int64(len(s.users) + 1), Username: in.Username, Email: in.Email, Role: domain.RoleClient, Status: domain.UserActive, PasswordHash: "hashed"}
	s.users[u.ID] = u
	return u, nil
}

func (s *stubUserService) Get(_ context.Context, id int64) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.NotFound("user", id)
	}
	return u, nil
}

func (s *stubUserService) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.NotFound("user", username)
}

func (s *stubUserService) List(context.Context, domain.Page) ([]*domain.User, error) {
	return nil, nil
}

func (s *stubUserService) Update(_ context.Context, id int64, p domain.UserPatch) (*domain.User, error) {
	s.patches = append(s.patches, p)
	u, ok := s.users[id]
	if !ok {
		return nil, domain.NotFound("user", id)
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	return u, nil
}

func (s *stubUserService) Delete(_ context.Context, id int64) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.NotFound("user", id)
	}
	delete(s.users, id)
	return u, nil
}

func asUser(c echo.Context, u *domain.User) echo.Context {
	c.Set(middleware.ContextUser, u)
	c.Set(middleware.ContextRole, string(u.Role))
	return c
}

func TestUserHandler_RegisterHidesHash(t *testing.T) {
	e := newEcho()
	h := NewUserHandler(newStubUserService())

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/users", `{"username":"alice","email":"a@x.com","password":"secret1","role":"Client"}`), rec)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if body := rec.Body.String(); containsAny(body, "hashed", "password") {
		t.Fatalf("response leaks credentials: %s", body)
	}
}

func TestUserHandler_RegisterRejectsUnknownRole(t *testing.T) {
	e := newEcho()
	h := NewUserHandler(newStubUserService())

	c := e.NewContext(jsonRequest(http.MethodPost, "/users", `{"username":"alice","email":"a@x.com","password":"secret1","role":"Vet"}`), httptest.NewRecorder())
	var verr *domain.ValidationError
	if err := h.Register(c); !errors.As(err, &verr) || verr.Field != "role" {
		t.Fatalf("expected validation error on role, got %v", err)
	}
}

func TestUserHandler_Me(t *testing.T) {
	e := newEcho()
	svc := newStubUserService()
	h := NewUserHandler(svc)

	rec := httptest.NewRecorder()
	c := asUser(e.NewContext(httptest.NewRequest(http.MethodGet, "/users/me", nil), rec), svc.users[2])
	if err := h.Me(c); err != nil {
		t.Fatalf("me: %v", err)
	}
	if !containsAny(rec.Body.String(), `"username":"amina"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/users/me", nil), httptest.NewRecorder())
	if err := h.Me(c); !errors.Is(err, domain.ErrAuthFailure) {
		t.Fatalf("expected ErrAuthFailure without a user, got %v", err)
	}
}

func TestUserHandler_UpdateOwnership(t *testing.T) {
	e := newEcho()
	svc := newStubUserService()
	h := NewUserHandler(svc)

	// Someone else's account.
	c := withID(asUser(e.NewContext(jsonRequest(http.MethodPatch, "/users/3", `{"email":"x@x.com"}`), httptest.NewRecorder()), svc.users[2]), "3")
	if err := h.Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Own account, but status is admin-only.
	c = withID(asUser(e.NewContext(jsonRequest(http.MethodPatch, "/users/2", `{"status":"Suspended"}`), httptest.NewRecorder()), svc.users[2]), "2")
	if err := h.Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for status change, got %v", err)
	}

	// Own account; last_login from the client is dropped.
	rec := httptest.NewRecorder()
	c = withID(asUser(e.NewContext(jsonRequest(http.MethodPatch, "/users/2", `{"email":"new@x.com","last_login":"2020-01-01T00:00:00Z"}`), rec), svc.users[2]), "2")
	if err := h.Update(c); err != nil {
		t.Fatalf("self update: %v", err)
	}
	last := svc.patches[len(svc.patches)-1]
	if last.LastLogin != nil {
		t.Fatalf("last_login must not be client controlled")
	}
	if svc.users[2].Email != "new@x.com" {
		t.Fatalf("email not updated")
	}

	// Admin may suspend anyone.
	c = withID(asUser(e.NewContext(jsonRequest(http.MethodPatch, "/users/3", `{"status":"Suspended"}`), httptest.NewRecorder()), svc.users[1]), "3")
	if err := h.Update(c); err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if svc.users[3].Status != domain.UserSuspended {
		t.Fatalf("status not updated: %s", svc.users[3].Status)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	e := newEcho()
	svc := newStubUserService()
	h := NewUserHandler(svc)

	c := withID(asUser(e.NewContext(httptest.NewRequest(http.MethodDelete, "/users/1", nil), httptest.NewRecorder()), svc.users[3]), "1")
	if err := h.Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	rec := httptest.NewRecorder()
	c = withID(asUser(e.NewContext(httptest.NewRequest(http.MethodDelete, "/users/3", nil), rec), svc.users[3]), "3")
	if err := h.Delete(c); err != nil {
		t.Fatalf("self delete: %v", err)
	}
	if !containsAny(rec.Body.String(), `"username":"baraka"`) {
		t.Fatalf("expected snapshot, got %s", rec.Body.String())
	}
	if _, ok := svc.users[3]; ok {
		t.Fatalf("user not removed")
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
