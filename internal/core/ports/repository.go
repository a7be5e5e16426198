package ports

import (
	"context"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

// Reader fetches entities by primary key or as an ordered page.
type Reader[E any] interface {
	Get(ctx context.Context, id int64) (*E, error)
	List(ctx context.Context, page domain.Page) ([]*E, error)
}

type Creator[E, C any] interface {
	Create(ctx context.Context, in C) (*E, error)
}

// Updater applies a partial change and returns the row as committed.
// An empty change returns the current row unchanged.
type Updater[E, P any] interface {
	Update(ctx context.Context, id int64, patch P) (*E, error)
}

// Deleter removes a row and returns its last state.
type Deleter[E any] interface {
	Delete(ctx context.Context, id int64) (*E, error)
}

// Repository is the full set of CRUD operations over one entity.
// Storage adapters and the services wrapping them both satisfy it.
type Repository[E, C, P any] interface {
	Reader[E]
	Creator[E, C]
	Updater[E, P]
	Deleter[E]
}

// RecordRepository serves entities that are created and removed but never edited.
type RecordRepository[E, C any] interface {
	Reader[E]
	Creator[E, C]
	Deleter[E]
}

// AppendOnlyRepository serves history that is never edited or removed.
type AppendOnlyRepository[E, C any] interface {
	Reader[E]
	Creator[E, C]
}
