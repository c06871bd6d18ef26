package ioimport

import (
	"fmt"
	"runtime"

	"github.com/ecoglobe/biosync/pkg/errcode"
	"github.com/gnames/gn"
)

// DecodeError is returned when an import file is not a JSON list of
// species records.
func DecodeError(path string, err error) error {
	msg := "Cannot decode species from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ImportDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: decode %s: %w", fn, path, err),
	}
}

// RecordError is returned when a species record cannot be stored.
func RecordError(taxonID string, err error) error {
	msg := "Cannot import species <em>%s</em>"
	vars := []any{taxonID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ImportReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: import %s: %w", fn, taxonID, err),
	}
}
