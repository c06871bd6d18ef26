package iorest

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/ecoglobe/biosync/pkg/errcode"
	"github.com/gnames/gn"
)

// HTTPStatusError is the cause of a StatusError.
type HTTPStatusError struct {
	Status int
	Body   string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP status %d: %s", e.Status, e.Body)
}

// StatusCode returns the HTTP status of a failed request, or 0 if the
// error is not caused by an HTTP status.
func StatusCode(err error) int {
	var hs *HTTPStatusError
	if errors.As(Cause(err), &hs) {
		return hs.Status
	}
	return 0
}

// Cause returns the wrapped error of a gn.Error or err itself.
func Cause(err error) error {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) && gnErr.Err != nil {
		return gnErr.Err
	}
	return err
}

// RequestError is returned when a request cannot be sent or its response
// cannot be read.
func RequestError(source, url string, err error) error {
	msg := "Request to <em>%s</em> failed"
	vars := []any{source}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.SourceRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: request %s: %w", fn, url, err),
	}
}

// StatusError is returned when a remote API responds with an error status.
func StatusError(source, url string, status int, body []byte) error {
	msg := "Remote API <em>%s</em> responded with status <em>%d</em>"
	vars := []any{source, status}
	preview := string(body)
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.SourceStatusError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s: %w", fn, url,
			&HTTPStatusError{Status: status, Body: preview}),
	}
}

// DecodeError is returned when a response is not valid JSON.
func DecodeError(source, url string, err error) error {
	msg := "Cannot decode response of <em>%s</em>"
	vars := []any{source}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.SourceDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: decode %s: %w", fn, url, err),
	}
}

// RateLimitError is returned when waiting for the rate limiter is
// interrupted, usually by a cancelled context.
func RateLimitError(source string, err error) error {
	msg := "Request to <em>%s</em> cancelled while waiting for rate limit"
	vars := []any{source}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.SourceRateLimitError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: rate limit wait: %w", fn, err),
	}
}
