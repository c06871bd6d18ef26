package iostore

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/ecoglobe/biosync/pkg/errcode"
	"github.com/ecoglobe/biosync/pkg/store"
	"github.com/gnames/gn"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL error code of a unique constraint
// violation.
const uniqueViolation = "23505"

// classify maps driver errors to store sentinels. It returns nil if the
// error is not one of them.
func classify(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, store.ErrDuplicate)
	}
	return nil
}

// QueryError is returned when reading from a table fails.
func QueryError(table, key string, err error) error {
	msg := "Cannot read <em>%s</em> record <em>%s</em>"
	vars := []any{table, key}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: query %s %s: %w", fn, table, key, err),
	}
}

// InsertError is returned when inserting a record fails.
func InsertError(table, key string, err error) error {
	msg := "Cannot insert <em>%s</em> record <em>%s</em>"
	vars := []any{table, key}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.StoreInsertError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: insert %s %s: %w", fn, table, key, err),
	}
}

// UpdateError is returned when updating a record fails.
func UpdateError(table, key string, err error) error {
	msg := "Cannot update <em>%s</em> record <em>%s</em>"
	vars := []any{table, key}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.StoreUpdateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: update %s %s: %w", fn, table, key, err),
	}
}

// DecodeError is returned when a JSONB column cannot be decoded or encoded.
func DecodeError(table, column string, err error) error {
	msg := "Cannot convert <em>%s.%s</em> JSON data"
	vars := []any{table, column}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.StoreDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: json %s.%s: %w", fn, table, column, err),
	}
}
