package iofs

import (
	"errors"
	"strings"
	"testing"

	"github.com/ecoglobe/biosync/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied")

	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		user string
	}{
		{"create dir", CreateDirError("/tmp/x", cause),
			errcode.CreateDirError, "Cannot create directory"},
		{"copy file", CopyFileError("/tmp/config.yaml", cause),
			errcode.CopyFileError, "default configuration"},
		{"read file", ReadFileError("/tmp/species.json", cause),
			errcode.ReadFileError, "Cannot read"},
		{"no import files", NoImportFilesError("/tmp/import"),
			errcode.NoImportFilesError, "No JSON files"},
		{"write report", WriteReportError("/tmp/r.json", cause),
			errcode.WriteReportError, "Cannot save report"},
	}

	for _, v := range tests {
		var gnErr *gn.Error
		require.True(t, errors.As(v.err, &gnErr), v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.Contains(t, gnErr.Msg, v.user, v.msg)
		assert.Contains(t, gnErr.Msg, "<em>%s</em>", v.msg)
		require.Len(t, gnErr.Vars, 1, v.msg)
		assert.True(t, strings.HasPrefix(gnErr.Vars[0].(string), "/tmp/"), v.msg)
	}
}

func TestErrors_Cause(t *testing.T) {
	cause := errors.New("disk full")
	err := WriteReportError("/tmp/r.json", cause)

	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.True(t, errors.Is(gnErr.Err, cause))
	assert.Contains(t, gnErr.Err.Error(), "iofs.TestErrors_Cause")
}
