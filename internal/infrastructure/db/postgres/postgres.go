// Package postgres is the relational store for every livestock entity. Each
// write runs in its own READ COMMITTED transaction and locks the target row
// before reading it back for update or delete.
package postgres

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

const defaultConnectTimeout = 10 * time.Second

// Config holds the connection parameters. A zero Timeout means defaultConnectTimeout.
type Config struct {
	URL      string
	MaxConns int32
	Timeout  time.Duration
}

func (cfg Config) connectTimeout() time.Duration {
	if cfg.Timeout <= 0 {
		return defaultConnectTimeout
	}
	return cfg.Timeout
}

// Connect opens a pool and verifies it with a ping.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.connectTimeout())
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return pool, nil
}

//go:embed schema.sql.tmpl
var schemaTemplate string

var schema = template.Must(template.New("schema").Funcs(template.FuncMap{
	"list": sqlList,
}).Parse(schemaTemplate))

// Schema renders the DDL. Enum CHECK constraints come from the domain value lists.
func Schema() (string, error) {
	var buf bytes.Buffer
	err := schema.Execute(&buf, map[string]any{
		"Roles":               domain.Strings(domain.Roles),
		"UserStatuses":        domain.Strings(domain.UserStatuses),
		"Genders":             domain.Strings(domain.Genders),
		"CattleStatuses":      domain.Strings(domain.CattleStatuses),
		"TradeStatuses":       domain.Strings(domain.TradeStatuses),
		"DefaultRole":         domain.RoleClient,
		"DefaultStatus":       domain.UserActive,
		"DefaultCattleStatus": domain.CattleAvailable,
		"DefaultTradeStatus":  domain.TradePending,
	})
	if err != nil {
		return "", fmt.Errorf("postgres: render schema: %w", err)
	}
	return buf.String(), nil
}

// Migrate creates any missing tables and indexes. It is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	ddl, err := Schema()
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}

func sqlList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	return strings.Join(quoted, ", ")
}
