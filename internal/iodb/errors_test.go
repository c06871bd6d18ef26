package iodb

import (
	"errors"
	"testing"

	"github.com/ecoglobe/biosync/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionError(t *testing.T) {
	cause := errors.New("connection refused")
	err := ConnectionError("localhost", 5432, "biosync", "postgres", cause)

	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.Equal(t, []any{"biosync", "localhost", 5432, "localhost", "postgres"},
		gnErr.Vars)
	assert.ErrorIs(t, gnErr.Err, cause)
	assert.Contains(t, gnErr.Err.Error(), "iodb.TestConnectionError")
}

func TestMissingTablesError(t *testing.T) {
	err := MissingTablesError("biosync", []string{"species", "clusters"})

	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.DBMissingTablesError, gnErr.Code)
	assert.Equal(t, []any{"biosync", "species, clusters"}, gnErr.Vars)
	assert.Contains(t, gnErr.Msg, "biosync create")
}

func TestErrorCodes(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
	}{
		{"not connected", NotConnectedError(), errcode.DBNotConnectedError},
		{"table check", TableCheckError(cause), errcode.DBTableCheckError},
		{"row count", RowCountError("species", cause), errcode.DBRowCountError},
		{"drop table", DropTableError("species", cause), errcode.DBDropTableError},
	}

	for _, v := range tests {
		var gnErr *gn.Error
		require.True(t, errors.As(v.err, &gnErr), v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.NotEmpty(t, gnErr.Msg, v.msg)
	}
}
