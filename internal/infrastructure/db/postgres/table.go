package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

// querier is satisfied by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txBeginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// inTx runs fn in a READ COMMITTED transaction, committing on nil.
func inTx(ctx context.Context, db txBeginner, fn func(pgx.Tx) error) error {
	err := pgx.BeginTxFunc(ctx, db, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
	if err != nil {
		return translate(err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

type assignment struct {
	column string
	value  any
}

// changeset is an ordered list of column assignments.
type changeset []assignment

func (c *changeset) set(column string, value any) {
	*c = append(*c, assignment{column: column, value: value})
}

// setIf records the assignment only when v is present.
func setIf[T any](c *changeset, column string, v *T) {
	if v != nil {
		c.set(column, *v)
	}
}

// table maps one entity type onto its table.
type table[E any] struct {
	name    string
	entity  string
	key     string
	columns []string
	scan    func(row scanner, e *E) error
}

func (t table[E]) returning() string {
	return strings.Join(t.columns, ", ")
}

func (t table[E]) one(row scanner, key any) (*E, error) {
	var e E
	if err := t.scan(row, &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(t.entity, key)
		}
		return nil, translate(err)
	}
	return &e, nil
}

func (t table[E]) insertSQL(cs changeset) (string, []any) {
	if len(cs) == 0 {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING %s", t.name, t.returning()), nil
	}
	cols := make([]string, len(cs))
	marks := make([]string, len(cs))
	args := make([]any, len(cs))
	for i, a := range cs {
		cols[i] = a.column
		marks[i] = "$" + strconv.Itoa(i+1)
		args[i] = a.value
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		t.name, strings.Join(cols, ", "), strings.Join(marks, ", "), t.returning()), args
}

func (t table[E]) updateSQL(id int64, cs changeset) (string, []any) {
	sets := make([]string, len(cs))
	args := make([]any, 0, len(cs)+1)
	for i, a := range cs {
		sets[i] = a.column + " = $" + strconv.Itoa(i+1)
		args = append(args, a.value)
	}
	args = append(args, id)
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d RETURNING %s",
		t.name, strings.Join(sets, ", "), t.key, len(args), t.returning()), args
}

func (t table[E]) insert(ctx context.Context, q querier, cs changeset) (*E, error) {
	sql, args := t.insertSQL(cs)
	return t.one(q.QueryRow(ctx, sql, args...), "(new)")
}

func (t table[E]) get(ctx context.Context, q querier, id int64) (*E, error) {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", t.returning(), t.name, t.key)
	return t.one(q.QueryRow(ctx, sql, id), id)
}

// lock reads the row and holds it until the transaction ends.
func (t table[E]) lock(ctx context.Context, tx pgx.Tx, id int64) (*E, error) {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 FOR UPDATE", t.returning(), t.name, t.key)
	return t.one(tx.QueryRow(ctx, sql, id), id)
}

func (t table[E]) update(ctx context.Context, tx pgx.Tx, id int64, cs changeset) (*E, error) {
	sql, args := t.updateSQL(id, cs)
	return t.one(tx.QueryRow(ctx, sql, args...), id)
}

func (t table[E]) delete(ctx context.Context, tx pgx.Tx, id int64) error {
	sql := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", t.name, t.key)
	if _, err := tx.Exec(ctx, sql, id); err != nil {
		return translate(err)
	}
	return nil
}

// list returns a page ordered by primary key. where may be empty; its
// placeholders start at $1 and args bind to them.
func (t table[E]) list(ctx context.Context, q querier, page domain.Page, where string, args ...any) ([]*E, error) {
	page = page.Normalize()
	sql := "SELECT " + t.returning() + " FROM " + t.name
	if where != "" {
		sql += " WHERE " + where
	}
	sql += fmt.Sprintf(" ORDER BY %s OFFSET $%d LIMIT $%d", t.key, len(args)+1, len(args)+2)
	args = append(args, page.Offset, page.Limit)

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	out := make([]*E, 0, page.Limit)
	for rows.Next() {
		var e E
		if err := t.scan(rows, &e); err != nil {
			return nil, translate(err)
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// dateArg binds a Date as time.Time, or NULL when absent or zero.
func dateArg(d *domain.Date) any {
	if d == nil || d.IsZero() {
		return nil
	}
	return d.Time
}

func setDateIf(c *changeset, column string, d *domain.Date) {
	if d != nil {
		c.set(column, dateArg(d))
	}
}

// setEnumIf records a string-typed enum value when present.
func setEnumIf[T ~string](c *changeset, column string, v *T) {
	if v != nil {
		c.set(column, string(*v))
	}
}
