package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

const testSecret = "test-secret"

func newTestAuth(t *testing.T) (*AuthService, *stubUserRepo) {
	t.Helper()
	repo := newStubUserRepo()
	svc, err := NewAuthService(repo, testHasher, &AuthConfig{Secret: testSecret, TokenTTL: 30 * time.Minute}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	return svc, repo
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password string, status domain.UserStatus) *domain.User {
	t.Helper()
	hash, err := testHasher.Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u, err := repo.Create(context.Background(), domain.NewUser{
		Username: username, Email: username + "@x.io", PasswordHash: hash,
		Role: domain.RoleFarmer, Status: status,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	if _, err := NewAuthService(newStubUserRepo(), testHasher, &AuthConfig{}, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, repo := newTestAuth(t)
	seedUser(t, repo, "amina", "secret1", domain.UserActive)

	user, err := svc.Authenticate(context.Background(), "amina", "secret1")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.Username != "amina" {
		t.Fatalf("unexpected user %q", user.Username)
	}

	if _, err := svc.Authenticate(context.Background(), "amina", "wrong"); !errors.Is(err, domain.ErrAuthFailure) {
		t.Fatalf("wrong password: expected ErrAuthFailure, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "ghost", "secret1"); !errors.Is(err, domain.ErrAuthFailure) {
		t.Fatalf("unknown user: expected ErrAuthFailure, got %v", err)
	}
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc, repo := newTestAuth(t)
	user := seedUser(t, repo, "amina", "secret1", domain.UserActive)

	token, err := svc.IssueToken(user)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if token.TokenType != "bearer" {
		t.Fatalf("unexpected token type %q", token.TokenType)
	}

	subject, err := svc.ValidateToken(token.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if subject != "amina" {
		t.Fatalf("expected subject amina, got %q", subject)
	}
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	svc, repo := newTestAuth(t)
	user := seedUser(t, repo, "amina", "secret1", domain.UserActive)

	issuedAt := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }
	token, err := svc.IssueToken(user)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	svc.now = func() time.Time { return issuedAt.Add(29 * time.Minute) }
	if _, err := svc.ValidateToken(token.AccessToken); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	svc.now = func() time.Time { return issuedAt.Add(31 * time.Minute) }
	if _, err := svc.ValidateToken(token.AccessToken); !errors.Is(err, domain.ErrAuthFailure) {
		t.Fatalf("expected ErrAuthFailure for expired token, got %v", err)
	}
}

func TestAuthService_ValidateToken_RejectsForeignSignatures(t *testing.T) {
	svc, _ := newTestAuth(t)

	claims := jwt.MapClaims{"sub": "amina", "exp": time.Now().Add(time.Hour).Unix()}
	wrongKey, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	if _, err := svc.ValidateToken(wrongKey); !errors.Is(err, domain.ErrAuthFailure) {
		t.Fatalf("wrong key: expected ErrAuthFailure, got %v", err)
	}

	unsigned, _ := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := svc.ValidateToken(unsigned); !errors.Is(err, domain.ErrAuthFailure) {
		t.Fatalf("alg none: expected ErrAuthFailure, got %v", err)
	}

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "amina"}).SignedString([]byte(testSecret))
	if _, err := svc.ValidateToken(noExp); !errors.Is(err, domain.ErrAuthFailure) {
		t.Fatalf("missing exp: expected ErrAuthFailure, got %v", err)
	}

	if _, err := svc.ValidateToken("garbage"); !errors.Is(err, domain.ErrAuthFailure) {
		t.Fatalf("garbage: expected ErrAuthFailure, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, repo := newTestAuth(t)
	user := seedUser(t, repo, "amina", "secret1", domain.UserActive)

	token, got, err := svc.Login(context.Background(), "amina", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.ID != user.ID || token.AccessToken == "" {
		t.Fatalf("unexpected login result: %+v %+v", token, got)
	}
	if _, ok := repo.touched[user.ID]; !ok {
		t.Fatalf("expected last_login to be recorded")
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	svc, repo := newTestAuth(t)
	seedUser(t, repo, "sam", "secret1", domain.UserSuspended)

	if _, _, err := svc.Login(context.Background(), "sam", "secret1"); !errors.Is(err, domain.ErrInactiveUser) {
		t.Fatalf("expected ErrInactiveUser, got %v", err)
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	svc, repo := newTestAuth(t)
	user := seedUser(t, repo, "amina", "secret1", domain.UserActive)
	token, err := svc.IssueToken(user)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	got, err := svc.CurrentUser(context.Background(), token.AccessToken)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, got.ID)
	}

	inactive := domain.UserInactive
	if _, err := repo.Update(context.Background(), user.ID, domain.UserChanges{Status: &inactive}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := svc.CurrentUser(context.Background(), token.AccessToken); !errors.Is(err, domain.ErrInactiveUser) {
		t.Fatalf("expected ErrInactiveUser after deactivation, got %v", err)
	}

	if _, err := repo.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.CurrentUser(context.Background(), token.AccessToken); !errors.Is(err, domain.ErrAuthFailure) {
		t.Fatalf("expected ErrAuthFailure for deleted user, got %v", err)
	}
}
