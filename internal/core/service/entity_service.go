package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
	"github.com/Mirieri/nikonangombeghani-api/internal/core/ports"
	"github.com/Mirieri/nikonangombeghani-api/internal/pkg/metrics"
)

// validatable is implemented by every create and patch input in the domain package.
type validatable interface {
	Validate() error
}

type entityBase[E any] struct {
	entity string
	reader ports.Reader[E]
	log    zerolog.Logger
}

// observe counts the operation and logs failures. Expected domain errors are
// logged at debug; anything else is an error.
func (b *entityBase[E]) observe(op string, err error) {
	metrics.EntityOperationsTotal.WithLabelValues(b.entity, op, metrics.Result(err)).Inc()
	if err == nil {
		return
	}
	ev := b.log.Error()
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrIntegrity) || errors.Is(err, domain.ErrValidation) {
		ev = b.log.Debug()
	}
	ev.Err(err).Str("entity", b.entity).Str("operation", op).Msg("entity operation failed")
}

func (b *entityBase[E]) Get(ctx context.Context, id int64) (*E, error) {
	e, err := b.reader.Get(ctx, id)
	b.observe("get", err)
	return e, err
}

func (b *entityBase[E]) List(ctx context.Context, page domain.Page) ([]*E, error) {
	out, err := b.reader.List(ctx, page.Normalize())
	b.observe("list", err)
	return out, err
}

// AppendOnlyService validates and stores history that is never edited.
type AppendOnlyService[E any, C validatable] struct {
	entityBase[E]
	creator ports.Creator[E, C]
}

func NewAppendOnlyService[E any, C validatable](entity string, repo ports.AppendOnlyRepository[E, C], log zerolog.Logger) *AppendOnlyService[E, C] {
	return &AppendOnlyService[E, C]{
		entityBase: entityBase[E]{entity: entity, reader: repo, log: log},
		creator:    repo,
	}
}

func (s *AppendOnlyService[E, C]) Create(ctx context.Context, in C) (*E, error) {
	if err := in.Validate(); err != nil {
		s.observe("create", err)
		return nil, fmt.Errorf("create %s: %w", s.entity, err)
	}
	e, err := s.creator.Create(ctx, in)
	s.observe("create", err)
	return e, err
}

// RecordService adds deletion to AppendOnlyService.
type RecordService[E any, C validatable] struct {
	AppendOnlyService[E, C]
	deleter ports.Deleter[E]
}

func NewRecordService[E any, C validatable](entity string, repo ports.RecordRepository[E, C], log zerolog.Logger) *RecordService[E, C] {
	return &RecordService[E, C]{
		AppendOnlyService: *NewAppendOnlyService[E, C](entity, repo, log),
		deleter:           repo,
	}
}

func (s *RecordService[E, C]) Delete(ctx context.Context, id int64) (*E, error) {
	e, err := s.deleter.Delete(ctx, id)
	s.observe("delete", err)
	return e, err
}

// CRUDService is the full create, read, update and delete surface of one entity.
type CRUDService[E any, C validatable, P validatable] struct {
	RecordService[E, C]
	updater ports.Updater[E, P]
}

func NewCRUDService[E any, C validatable, P validatable](entity string, repo ports.Repository[E, C, P], log zerolog.Logger) *CRUDService[E, C, P] {
	return &CRUDService[E, C, P]{
		RecordService: *NewRecordService[E, C](entity, repo, log),
		updater:       repo,
	}
}

func (s *CRUDService[E, C, P]) Update(ctx context.Context, id int64, patch P) (*E, error) {
	if err := patch.Validate(); err != nil {
		s.observe("update", err)
		return nil, fmt.Errorf("update %s: %w", s.entity, err)
	}
	e, err := s.updater.Update(ctx, id, patch)
	s.observe("update", err)
	return e, err
}
