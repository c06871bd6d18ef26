// Package iodb implements db.Operator with pgxpool.
package iodb

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"slices"

	"github.com/ecoglobe/biosync/pkg/config"
	"github.com/ecoglobe/biosync/pkg/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// minConns keeps connections warm for the sync page loop and for the
// enrichment tasks that run next to it.
const minConns = 2

type pgxOperator struct {
	pool *pgxpool.Pool
}

// NewPgxOperator returns an operator that is not connected yet.
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

// DSN builds a PostgreSQL connection URL. User and password are escaped.
func DSN(cfg *config.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     cfg.Database,
		RawQuery: "sslmode=" + url.QueryEscape(cfg.SSLMode),
	}
	return u.String()
}

func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	connErr := func(err error) error {
		return ConnectionError(cfg.Host, cfg.Port, cfg.Database, cfg.User, err)
	}

	pc, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return connErr(err)
	}
	pc.MaxConns = int32(max(cfg.MaxConns, minConns))
	pc.MinConns = minConns

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return connErr(err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return connErr(err)
	}

	slog.Info("Connected to database",
		"host", cfg.Host,
		"database", cfg.Database,
		"max_conns", pc.MaxConns,
	)
	p.pool = pool
	return nil
}

func (p *pgxOperator) Close() error {
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return nil
}

func (p *pgxOperator) Pool() *pgxpool.Pool {
	return p.pool
}

func (p *pgxOperator) MissingTables(
	ctx context.Context,
	names ...string,
) ([]string, error) {
	if p.pool == nil {
		return nil, NotConnectedError()
	}

	rows, err := p.pool.Query(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name = ANY($1)`,
		names,
	)
	if err != nil {
		return nil, TableCheckError(err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, TableCheckError(err)
	}

	var res []string
	for _, v := range names {
		if !slices.Contains(found, v) {
			res = append(res, v)
		}
	}
	return res, nil
}

func (p *pgxOperator) RowCount(ctx context.Context, table string) (int64, error) {
	if p.pool == nil {
		return 0, NotConnectedError()
	}
	q := "SELECT count(*) FROM " + pgx.Identifier{table}.Sanitize()
	var res int64
	if err := p.pool.QueryRow(ctx, q).Scan(&res); err != nil {
		return 0, RowCountError(table, err)
	}
	return res, nil
}

func (p *pgxOperator) DropTables(ctx context.Context, names ...string) error {
	if p.pool == nil {
		return NotConnectedError()
	}
	for _, v := range names {
		q := "DROP TABLE IF EXISTS " + pgx.Identifier{v}.Sanitize() + " CASCADE"
		if _, err := p.pool.Exec(ctx, q); err != nil {
			return DropTableError(v, err)
		}
		slog.Debug("Table dropped", "table", v)
	}
	return nil
}
