package iodb

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/ecoglobe/biosync/pkg/errcode"
	"github.com/gnames/gn"
)

func caller() string {
	pc, _, _, _ := runtime.Caller(2)
	return runtime.FuncForPC(pc).Name()
}

// ConnectionError is returned when the pool cannot reach PostgreSQL.
func ConnectionError(
	host string, port int, database, user string, err error,
) error {
	msg := `Cannot connect to PostgreSQL database <em>%s</em>

Check that the server is up:
  <em>pg_isready -h %s -p %d</em>
Check that the database exists:
  <em>psql -h %s -U %s -l</em>
Connection settings are in ~/.config/biosync/config.yaml or
BIOSYNC_DATABASE_* variables.`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{database, host, port, host, user},
		Err: fmt.Errorf("from %s: connect %s:%d/%s: %w",
			caller(), host, port, database, err),
	}
}

// NotConnectedError is returned when an operation runs before Connect.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database is not connected",
		Err:  fmt.Errorf("from %s: pool is nil", caller()),
	}
}

// TableCheckError is returned when the table catalog cannot be read.
func TableCheckError(err error) error {
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  "Cannot read the table catalog of the database",
		Err:  fmt.Errorf("from %s: information_schema: %w", caller(), err),
	}
}

// MissingTablesError tells the user to create the schema.
func MissingTablesError(database string, tables []string) error {
	msg := `Database <em>%s</em> has no tables <em>%s</em>

Create the schema first:
  <em>biosync create</em>`

	list := strings.Join(tables, ", ")
	return &gn.Error{
		Code: errcode.DBMissingTablesError,
		Msg:  msg,
		Vars: []any{database, list},
		Err:  fmt.Errorf("from %s: missing tables: %s", caller(), list),
	}
}

// RowCountError is returned when a table cannot be counted.
func RowCountError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBRowCountError,
		Msg:  "Cannot count rows of <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("from %s: count %s: %w", caller(), table, err),
	}
}

// DropTableError is returned when a table cannot be dropped.
func DropTableError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  "Cannot drop table <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("from %s: drop %s: %w", caller(), table, err),
	}
}
