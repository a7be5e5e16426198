package ports

import (
	"context"
	"time"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

// UserRepository persists accounts. Create rejects a taken username or email
// with domain.ErrIntegrity before inserting.
type UserRepository interface {
	Repository[domain.User, domain.NewUser, domain.UserChanges]
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}

// PasswordHasher produces and checks salted one-way password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
