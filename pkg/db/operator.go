// Package db defines the connection contract of the biosync database.
package db

import (
	"context"

	"github.com/ecoglobe/biosync/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator owns the connection pool. Table operations take explicit
// table names, so tables of other applications sharing the database are
// never touched.
type Operator interface {
	// Connect creates the pool and checks the server is reachable.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close releases the pool. Closing an unconnected operator is a no-op.
	Close() error

	// Pool is nil until Connect succeeds.
	Pool() *pgxpool.Pool

	// MissingTables returns names that have no table in the public schema,
	// in the given order.
	MissingTables(ctx context.Context, names ...string) ([]string, error)

	// RowCount returns the number of rows of a table.
	RowCount(ctx context.Context, table string) (int64, error)

	// DropTables drops tables that exist, together with dependent objects.
	DropTables(ctx context.Context, names ...string) error
}
