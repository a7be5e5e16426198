package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

// SQLSTATE codes the store distinguishes.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
	codeNumericOutOfRange   = "22003"
	codeStringTooLong       = "22001"
)

// translate maps driver errors onto the domain taxonomy. Anything it does
// not recognise is returned unchanged.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: duplicate value violates %s", domain.ErrIntegrity, pgErr.ConstraintName)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s", domain.ErrIntegrity, pgErr.Detail)
	case codeNotNullViolation:
		return &domain.ValidationError{Field: pgErr.ColumnName, Message: "is required"}
	case codeCheckViolation:
		return &domain.ValidationError{Field: pgErr.ConstraintName, Message: "value is not allowed"}
	case codeInvalidText, codeNumericOutOfRange, codeStringTooLong:
		return &domain.ValidationError{Field: pgErr.ColumnName, Message: pgErr.Message}
	}
	return err
}
