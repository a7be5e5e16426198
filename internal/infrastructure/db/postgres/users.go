package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

var usersTable = table[domain.User]{
	name:   "users",
	entity: "user",
	key:    "user_id",
	columns: []string{
		"user_id", "username", "email", "password_hash", "role", "status",
		"phone", "address", "created_at", "last_login",
	},
	scan: func(row scanner, u *domain.User) error {
		return row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.Status,
			&u.Phone, &u.Address, &u.CreatedAt, &u.LastLogin)
	},
}

// UserRepository stores accounts in the users table.
type UserRepository struct {
	*store[domain.User, domain.NewUser, domain.UserChanges]
	now func() time.Time
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	r := &UserRepository{now: time.Now}
	r.store = &store[domain.User, domain.NewUser, domain.UserChanges]{
		records: records[domain.User, domain.NewUser]{
			pool:         pool,
			t:            usersTable,
			create:       newUserSet,
			beforeCreate: ensureUserUnique,
		},
		patch: r.changes,
	}
	return r
}

func newUserSet(in domain.NewUser) changeset {
	var cs changeset
	cs.set("username", in.Username)
	cs.set("email", in.Email)
	cs.set("password_hash", in.PasswordHash)
	cs.set("role", string(in.Role))
	cs.set("status", string(in.Status))
	cs.set("phone", in.Phone)
	cs.set("address", in.Address)
	return cs
}

// changes always touches last_login, so an otherwise empty patch still
// records activity.
func (r *UserRepository) changes(p domain.UserChanges) changeset {
	var cs changeset
	setIf(&cs, "username", p.Username)
	setIf(&cs, "email", p.Email)
	setIf(&cs, "password_hash", p.PasswordHash)
	setIf(&cs, "phone", p.Phone)
	setIf(&cs, "address", p.Address)
	setEnumIf(&cs, "status", p.Status)
	if p.LastLogin != nil {
		cs.set("last_login", *p.LastLogin)
	} else {
		cs.set("last_login", r.now().UTC())
	}
	return cs
}

// ensureUserUnique reports a taken username before a taken email.
func ensureUserUnique(ctx context.Context, tx pgx.Tx, in domain.NewUser) error {
	checks := []struct{ column, value string }{
		{"username", in.Username},
		{"email", in.Email},
	}
	for _, c := range checks {
		var taken bool
		sql := "SELECT EXISTS (SELECT 1 FROM users WHERE " + c.column + " = $1)"
		if err := tx.QueryRow(ctx, sql, c.value).Scan(&taken); err != nil {
			return translate(err)
		}
		if taken {
			return fmt.Errorf("%w: %s already registered", domain.ErrIntegrity, c.column)
		}
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	sql := "SELECT " + usersTable.returning() + " FROM users WHERE username = $1"
	return usersTable.one(r.pool.QueryRow(ctx, sql, username), username)
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	tag, err := r.pool.Exec(ctx, "UPDATE users SET last_login = $1 WHERE user_id = $2", at, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("user", id)
	}
	return nil
}
