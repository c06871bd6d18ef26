package iorest_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/ecoglobe/biosync/internal/iorest"
	"github.com/ecoglobe/biosync/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "https://api.example.org/v1"

func setup(t *testing.T, rps float64) *iorest.Client {
	t.Helper()
	hc := &http.Client{}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)
	return iorest.New("test", base+"/", time.Second, rps,
		iorest.OptHTTPClient(hc),
		iorest.OptHeader("Authorization", "Bearer secret"))
}

func TestURL(t *testing.T) {
	c := iorest.New("test", base+"/", time.Second, 0)
	assert.Equal(t, base+"/species/1", c.URL("/species/1", nil))
	q := url.Values{"b": {"2"}, "a": {"1"}}
	assert.Equal(t, base+"/x?a=1&b=2", c.URL("x", q))
}

func TestGetJSON(t *testing.T) {
	c := setup(t, 0)
	httpmock.RegisterResponder("GET", base+"/species/1",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Bearer secret", req.Header.Get("Authorization"))
			assert.Equal(t, "application/json", req.Header.Get("Accept"))
			return httpmock.NewStringResponse(200, `{"name":"Puma"}`), nil
		})

	var out struct {
		Name string `json:"name"`
	}
	err := c.GetJSON(context.Background(), "species", "species/1", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "Puma", out.Name)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestGetJSON_Errors(t *testing.T) {
	c := setup(t, 0)
	httpmock.RegisterResponder("GET", base+"/missing",
		httpmock.NewStringResponder(404, `{"message":"not found"}`))
	httpmock.RegisterResponder("GET", base+"/broken",
		httpmock.NewStringResponder(200, `{broken`))
	httpmock.RegisterResponder("GET", base+"/down",
		httpmock.NewErrorResponder(errors.New("connection refused")))

	tests := []struct {
		msg    string
		path   string
		code   gn.ErrorCode
		status int
	}{
		{"status", "missing", errcode.SourceStatusError, 404},
		{"decode", "broken", errcode.SourceDecodeError, 0},
		{"transport", "down", errcode.SourceRequestError, 0},
	}

	for _, v := range tests {
		var out map[string]any
		err := c.GetJSON(context.Background(), "test", v.path, nil, &out)
		require.Error(t, err, v.msg)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.Equal(t, v.status, iorest.StatusCode(err), v.msg)
	}
}

func TestGetJSON_Cancelled(t *testing.T) {
	c := setup(t, 0.001)
	httpmock.RegisterResponder("GET", base+"/x",
		httpmock.NewStringResponder(200, `{}`))

	// the first request takes the only token
	err := c.GetJSON(context.Background(), "x", "x", nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err = c.GetJSON(ctx, "x", "x", nil, nil)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.SourceRateLimitError, gnErr.Code)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestCause(t *testing.T) {
	plain := errors.New("plain")
	assert.Equal(t, plain, iorest.Cause(plain))
	assert.Equal(t, 0, iorest.StatusCode(plain))
}
