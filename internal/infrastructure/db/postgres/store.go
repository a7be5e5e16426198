package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

// records implements create, read and delete for one table. beforeCreate,
// when set, runs inside the insert transaction.
type records[E, C any] struct {
	pool   *pgxpool.Pool
	t      table[E]
	create func(C) changeset

	beforeCreate func(ctx context.Context, tx pgx.Tx, in C) error
}

// store adds partial updates to records. afterUpdate, when set, runs inside
// the update transaction with the locked and the updated row.
type store[E, C, P any] struct {
	records[E, C]
	patch       func(P) changeset
	afterUpdate func(ctx context.Context, tx pgx.Tx, before, after *E) error
}

func (s *records[E, C]) Create(ctx context.Context, in C) (*E, error) {
	var out *E
	err := inTx(ctx, s.pool, func(tx pgx.Tx) error {
		if s.beforeCreate != nil {
			if err := s.beforeCreate(ctx, tx, in); err != nil {
				return err
			}
		}
		e, err := s.t.insert(ctx, tx, s.create(in))
		out = e
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *records[E, C]) Get(ctx context.Context, id int64) (*E, error) {
	return s.t.get(ctx, s.pool, id)
}

func (s *records[E, C]) List(ctx context.Context, page domain.Page) ([]*E, error) {
	return s.t.list(ctx, s.pool, page, "")
}

func (s *store[E, C, P]) Update(ctx context.Context, id int64, p P) (*E, error) {
	var out *E
	err := inTx(ctx, s.pool, func(tx pgx.Tx) error {
		current, err := s.t.lock(ctx, tx, id)
		if err != nil {
			return err
		}
		cs := s.patch(p)
		if len(cs) == 0 {
			out = current
			return nil
		}
		updated, err := s.t.update(ctx, tx, id, cs)
		if err != nil {
			return err
		}
		if s.afterUpdate != nil {
			if err := s.afterUpdate(ctx, tx, current, updated); err != nil {
				return err
			}
		}
		out = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *records[E, C]) Delete(ctx context.Context, id int64) (*E, error) {
	var out *E
	err := inTx(ctx, s.pool, func(tx pgx.Tx) error {
		current, err := s.t.lock(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.t.delete(ctx, tx, id); err != nil {
			return err
		}
		out = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
