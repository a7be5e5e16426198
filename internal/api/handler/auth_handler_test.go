package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, username, password string) (*domain.Token, *domain.User, error)
}

func (s *stubAuthService) Authenticate(context.Context, string, string) (*domain.User, error) {
	return nil, errors.New("not used")
}

func (s *stubAuthService) IssueToken(*domain.User) (*domain.Token, error) {
	return nil, errors.New("not used")
}

func (s *stubAuthService) ValidateToken(string) (string, error) {
	return "", errors.New("not used")
}

func (s *stubAuthService) Authorize(u *domain.User) (*domain.User, error) {
	return u, nil
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.Token, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) CurrentUser(context.Context, string) (*domain.User, error) {
	return nil, errors.New("not used")
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func acceptAlice() *stubAuthService {
	return &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (*domain.Token, *domain.User, error) {
			if username != "alice" || password != "secret1" {
				return nil, nil, domain.ErrAuthFailure
			}
			return &domain.Token{AccessToken: "signed", TokenType: domain.TokenTypeBearer}, &domain.User{Username: "alice"}, nil
		},
	}
}

func TestAuthHandler_Token_Form(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(acceptAlice())

	form := url.Values{"username": {"alice"}, "password": {"secret1"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Token(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "signed" || resp["token_type"] != "bearer" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["expires_at"]; ok {
		t.Fatalf("expiry should not be serialized: %+v", resp)
	}
}

func TestAuthHandler_Token_JSON(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(acceptAlice())

	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(`{"username":"alice","password":"secret1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Token(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Token_WrongPassword(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(acceptAlice())

	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(`{"username":"alice","password":"nope"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	err := h.Token(e.NewContext(req, httptest.NewRecorder()))

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != http.StatusUnauthorized || he.Message != "Incorrect username or password" {
		t.Fatalf("unexpected error: %d %v", he.Code, he.Message)
	}
}

func TestAuthHandler_Token_InactiveUser(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string) (*domain.Token, *domain.User, error) {
			return nil, nil, domain.ErrInactiveUser
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(`{"username":"bob","password":"secret1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if err := h.Token(e.NewContext(req, httptest.NewRecorder())); !errors.Is(err, domain.ErrInactiveUser) {
		t.Fatalf("expected ErrInactiveUser, got %v", err)
	}
}

func TestAuthHandler_Token_MissingFields(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(acceptAlice())

	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(`{"username":"alice"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	err := h.Token(e.NewContext(req, httptest.NewRecorder()))

	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "password" {
		t.Fatalf("expected validation error on password, got %v", err)
	}
}
