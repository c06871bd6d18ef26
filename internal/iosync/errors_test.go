package iosync_test

import (
	"errors"
	"testing"

	"github.com/ecoglobe/biosync/internal/iosync"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsNameCaller(t *testing.T) {
	cause := errors.New("boom")
	for _, err := range []error{
		iosync.CountryError("XX"),
		iosync.ProbeError("CL", "2024-01-01", "2024-02-01", cause),
		iosync.PageError("CL", 300, cause),
		iosync.RecomputeError("CL", cause),
		iosync.ClusterError("CL", cause),
		iosync.AllFailedError(2, cause),
	} {
		var gnErr *gn.Error
		require.True(t, errors.As(err, &gnErr))
		msg := gnErr.Err.Error()
		assert.Contains(t, msg, "from github.com/ecoglobe/biosync/internal/iosync_test.TestErrorsNameCaller")
		assert.NotContains(t, msg, "&{")
	}
}
