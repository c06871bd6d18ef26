package ioschema

import (
	"errors"
	"testing"

	"github.com/ecoglobe/biosync/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied for schema public")

	tests := []struct {
		msg   string
		err   error
		code  gn.ErrorCode
		vars  []any
		cause bool
	}{
		{"not connected", NotConnectedError(),
			errcode.DBNotConnectedError, nil, false},
		{"gorm", GORMConnectionError(cause),
			errcode.SchemaGORMConnectionError, nil, true},
		{"create", CreateSchemaError(cause),
			errcode.SchemaCreateError, nil, true},
		{"migrate", MigrateSchemaError(cause),
			errcode.SchemaMigrateError, nil, true},
		{"index", IndexError("idx_species_locations", cause),
			errcode.SchemaIndexError, []any{"idx_species_locations"}, true},
		{"status", StatusError("clusters", cause),
			errcode.SchemaStatusError, []any{"clusters"}, true},
	}

	for _, v := range tests {
		var gnErr *gn.Error
		require.True(t, errors.As(v.err, &gnErr), v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.NotEmpty(t, gnErr.Msg, v.msg)
		assert.Equal(t, v.vars, gnErr.Vars, v.msg)
		assert.Equal(t, v.cause, errors.Is(gnErr.Err, cause), v.msg)
	}
}
