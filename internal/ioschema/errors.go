package ioschema

import (
	"fmt"

	"github.com/ecoglobe/biosync/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError is returned when the operator has no pool.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Schema operation needs a database connection",
		Err:  fmt.Errorf("schema manager: operator is not connected"),
	}
}

// GORMConnectionError is returned when GORM cannot use the pgx pool.
func GORMConnectionError(err error) error {
	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  "Cannot open GORM session on the database pool",
		Err:  fmt.Errorf("gorm open: %w", err),
	}
}

// CreateSchemaError is returned when AutoMigrate fails during create.
func CreateSchemaError(err error) error {
	msg := `Cannot create tables <em>species</em> and <em>clusters</em>

Check that the database user may create tables.`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Err:  fmt.Errorf("create schema: %w", err),
	}
}

// MigrateSchemaError is returned when AutoMigrate fails during migrate.
func MigrateSchemaError(err error) error {
	msg := `Cannot migrate biosync tables

Existing rows may violate a new constraint. Details are in the log.`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("migrate schema: %w", err),
	}
}

// IndexError is returned when an index cannot be created.
func IndexError(index string, err error) error {
	return &gn.Error{
		Code: errcode.SchemaIndexError,
		Msg:  "Cannot create index <em>%s</em>",
		Vars: []any{index},
		Err:  fmt.Errorf("create index %s: %w", index, err),
	}
}

// StatusError is returned when indexes of a table cannot be listed.
func StatusError(table string, err error) error {
	return &gn.Error{
		Code: errcode.SchemaStatusError,
		Msg:  "Cannot read indexes of <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("list indexes of %s: %w", table, err),
	}
}
