package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
	"github.com/Mirieri/nikonangombeghani-api/internal/core/ports"
	"github.com/Mirieri/nikonangombeghani-api/internal/pkg/metrics"
)

const defaultTokenTTL = 30 * time.Minute

// AuthConfig is shared by reference with whoever builds the service.
type AuthConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// tokenClaims carries the username as the subject plus the id and role
// snapshot at issue time. Authorization always re-reads the user.
type tokenClaims struct {
	UserID int64       `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService authenticates passwords and issues and checks HS256 tokens.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	cfg    *AuthConfig
	log    zerolog.Logger
	now    func() time.Time

	// dummyHash is compared against when the username is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash string
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, cfg *AuthConfig, log zerolog.Logger) (*AuthService, error) {
	if cfg == nil || cfg.Secret == "" {
		return nil, errors.New("auth: signing secret is required")
	}
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
		dummyHash: dummy,
	}, nil
}

func (s *AuthService) ttl() time.Duration {
	if s.cfg.TokenTTL <= 0 {
		return defaultTokenTTL
	}
	return s.cfg.TokenTTL
}

// Authenticate checks a username and password. Unknown users and wrong
// passwords fail identically with domain.ErrAuthFailure.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		_ = s.hasher.Compare(s.dummyHash, password)
		return nil, domain.ErrAuthFailure
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, domain.ErrAuthFailure
	}
	return user, nil
}

func (s *AuthService) IssueToken(user *domain.User) (*domain.Token, error) {
	now := s.now()
	expires := now.Add(s.ttl())
	claims := tokenClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &domain.Token{AccessToken: signed, TokenType: domain.TokenTypeBearer, ExpiresAt: expires}, nil
}

// ValidateToken verifies the signature and expiry and returns the subject.
func (s *AuthService) ValidateToken(token string) (string, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return []byte(s.cfg.Secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || claims.Subject == "" {
		return "", domain.ErrAuthFailure
	}
	return claims.Subject, nil
}

// Authorize admits only Active users.
func (s *AuthService) Authorize(user *domain.User) (*domain.User, error) {
	if !user.IsActive() {
		return nil, domain.ErrInactiveUser
	}
	return user, nil
}

// Login authenticates, authorizes and issues a token. Recording last_login is
// best-effort and never fails the login.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Token, *domain.User, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("failure").Inc()
		s.log.Warn().Str("username", username).Msg("login rejected")
		return nil, nil, err
	}
	if _, err := s.Authorize(user); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("inactive").Inc()
		s.log.Warn().Int64("user_id", user.ID).Str("status", string(user.Status)).Msg("login by inactive user")
		return nil, nil, err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, nil, err
	}
	if err := s.users.TouchLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		s.log.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to record last login")
	}

	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user logged in")
	return token, user, nil
}

// CurrentUser resolves a bearer token to an Active user. A token for a user
// that no longer exists is a credentials failure.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	username, err := s.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrAuthFailure
	}
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return s.Authorize(user)
}
