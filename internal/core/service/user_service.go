package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
	"github.com/Mirieri/nikonangombeghani-api/internal/core/ports"
	"github.com/Mirieri/nikonangombeghani-api/internal/pkg/metrics"
)

const userEntity = "user"

// UserService manages accounts. Plaintext passwords stop here: only hashes
// reach the repository.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, log: log}
}

func (s *UserService) observe(op string, err error) {
	metrics.EntityOperationsTotal.WithLabelValues(userEntity, op, metrics.Result(err)).Inc()
}

// Create registers an account. Role defaults to Client and status to Active.
func (s *UserService) Create(ctx context.Context, in domain.UserCreate) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		s.observe("create", err)
		return nil, fmt.Errorf("create user: %w", err)
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.observe("create", err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	role := in.Role
	if role == "" {
		role = domain.RoleClient
	}
	user, err := s.repo.Create(ctx, domain.NewUser{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		Status:       domain.UserActive,
		Phone:        in.Phone,
		Address:      in.Address,
	})
	s.observe("create", err)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Str("role", string(user.Role)).Msg("user registered")
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.repo.Get(ctx, id)
	s.observe("get", err)
	return u, err
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	s.observe("get", err)
	return u, err
}

func (s *UserService) List(ctx context.Context, page domain.Page) ([]*domain.User, error) {
	users, err := s.repo.List(ctx, page.Normalize())
	s.observe("list", err)
	return users, err
}

// Update applies a partial change. A new password is re-hashed; the stored
// last_login becomes now unless the patch sets it.
func (s *UserService) Update(ctx context.Context, id int64, p domain.UserPatch) (*domain.User, error) {
	if err := p.Validate(); err != nil {
		s.observe("update", err)
		return nil, fmt.Errorf("update user: %w", err)
	}

	changes := domain.UserChanges{
		Username:  p.Username,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		Status:    p.Status,
		LastLogin: p.LastLogin,
	}
	if p.Password != nil {
		hash, err := s.hasher.Hash(*p.Password)
		if err != nil {
			s.observe("update", err)
			return nil, fmt.Errorf("update user: %w", err)
		}
		changes.PasswordHash = &hash
	}

	u, err := s.repo.Update(ctx, id, changes)
	s.observe("update", err)
	return u, err
}

func (s *UserService) Delete(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.repo.Delete(ctx, id)
	s.observe("delete", err)
	if err == nil {
		s.log.Info().Int64("user_id", id).Msg("user deleted")
	}
	return u, err
}
