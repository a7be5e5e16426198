package domain

import (
	"strings"
	"time"
)

// User is an account holder. PasswordHash never leaves the service boundary.
type User struct {
	ID           int64      `json:"user_id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
	Phone        *string    `json:"phone"`
	Address      *string    `json:"address"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
}

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool {
	return u.Status == UserActive
}

// UserCreate is the registration payload. Password is plaintext.
type UserCreate struct {
	Username string  `json:"username" validate:"required,max=255"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,min=6,max=72"`
	Role     Role    `json:"role" validate:"omitempty,enum"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	Address  *string `json:"address" validate:"omitempty,max=255"`
}

func (in UserCreate) Validate() error {
	if strings.TrimSpace(in.Username) == "" {
		return Invalid("username", "is required")
	}
	if !strings.Contains(in.Email, "@") {
		return Invalid("email", "must be a valid email address")
	}
	if in.Password == "" {
		return Invalid("password", "is required")
	}
	if in.Role != "" {
		return checkEnum("role", in.Role, Roles)
	}
	return nil
}

// NewUser is a registration after hashing, as the store receives it.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	Status       UserStatus
	Phone        *string
	Address      *string
}

func (in NewUser) Validate() error {
	if in.PasswordHash == "" {
		return Invalid("password", "hash is missing")
	}
	if err := checkEnum("role", in.Role, Roles); err != nil {
		return err
	}
	return checkEnum("status", in.Status, UserStatuses)
}

// UserPatch is a partial account update. Absent fields are left untouched.
type UserPatch struct {
	Username  *string     `json:"username" validate:"omitempty,min=1,max=255"`
	Email     *string     `json:"email" validate:"omitempty,email,max=255"`
	Password  *string     `json:"password" validate:"omitempty,min=6,max=72"`
	Phone     *string     `json:"phone" validate:"omitempty,max=20"`
	Address   *string     `json:"address" validate:"omitempty,max=255"`
	Status    *UserStatus `json:"status" validate:"omitempty,enum"`
	LastLogin *time.Time  `json:"last_login"`
}

func (p UserPatch) Validate() error {
	if p.Username != nil && strings.TrimSpace(*p.Username) == "" {
		return Invalid("username", "must not be empty")
	}
	if p.Email != nil && !strings.Contains(*p.Email, "@") {
		return Invalid("email", "must be a valid email address")
	}
	if p.Password != nil && *p.Password == "" {
		return Invalid("password", "must not be empty")
	}
	if p.Status != nil {
		return checkEnum("status", *p.Status, UserStatuses)
	}
	return nil
}

// UserChanges is a UserPatch after hashing. A nil LastLogin is stored as now.
type UserChanges struct {
	Username     *string
	Email        *string
	PasswordHash *string
	Phone        *string
	Address      *string
	Status       *UserStatus
	LastLogin    *time.Time
}
