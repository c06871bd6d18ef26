package iohttp

import (
	"fmt"
	"runtime"

	"github.com/ecoglobe/biosync/pkg/errcode"
	"github.com/gnames/gn"
)

// ServerStartError is returned when the HTTP server cannot listen.
func ServerStartError(port int, err error) error {
	msg := "Cannot start HTTP server on port <em>%d</em>"
	vars := []any{port}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ServerStartError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: listen on %d: %w", fn, port, err),
	}
}
