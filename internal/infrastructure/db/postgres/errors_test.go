package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "users_email_key"}, domain.ErrIntegrity},
		{"foreign key", &pgconn.PgError{Code: codeForeignKeyViolation}, domain.ErrIntegrity},
		{"not null", &pgconn.PgError{Code: codeNotNullViolation, ColumnName: "name"}, domain.ErrValidation},
		{"check", &pgconn.PgError{Code: codeCheckViolation, ConstraintName: "cattle_gender_check"}, domain.ErrValidation},
		{"bad text", &pgconn.PgError{Code: codeInvalidText}, domain.ErrValidation},
		{"wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: codeUniqueViolation}), domain.ErrIntegrity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translate(tt.err), tt.want)
		})
	}
}

func TestTranslate_PassesThroughUnknownErrors(t *testing.T) {
	plain := errors.New("connection reset")
	assert.Same(t, plain, translate(plain))

	other := &pgconn.PgError{Code: "40001"}
	assert.Equal(t, error(other), translate(other))
}

func TestTranslate_CheckViolationNamesConstraint(t *testing.T) {
	err := translate(&pgconn.PgError{Code: codeCheckViolation, ConstraintName: "cattle_status_check"})

	var verr *domain.ValidationError
	if assert.ErrorAs(t, err, &verr) {
		assert.Equal(t, "cattle_status_check", verr.Field)
	}
}
