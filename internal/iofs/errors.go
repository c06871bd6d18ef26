package iofs

import (
	"fmt"
	"runtime"

	"github.com/ecoglobe/biosync/pkg/errcode"
	"github.com/gnames/gn"
)

func caller() string {
	pc, _, _, _ := runtime.Caller(2)
	return runtime.FuncForPC(pc).Name()
}

// CreateDirError is returned when a biosync directory cannot be made.
func CreateDirError(dir string, err error) error {
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  "Cannot create directory <em>%s</em>",
		Vars: []any{dir},
		Err:  fmt.Errorf("from %s: mkdir %s: %w", caller(), dir, err),
	}
}

// CopyFileError is returned when the default config cannot be written.
func CopyFileError(file string, err error) error {
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  "Cannot write default configuration to <em>%s</em>",
		Vars: []any{file},
		Err:  fmt.Errorf("from %s: write config %s: %w", caller(), file, err),
	}
}

// ReadFileError is returned when a config or import file is unreadable.
func ReadFileError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  "Cannot read <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: read %s: %w", caller(), path, err),
	}
}

// NoImportFilesError is returned when an import directory has no JSON files.
func NoImportFilesError(dir string) error {
	return &gn.Error{
		Code: errcode.NoImportFilesError,
		Msg:  "No JSON files in <em>%s</em>",
		Vars: []any{dir},
		Err:  fmt.Errorf("from %s: no *.json files in %s", caller(), dir),
	}
}

// WriteReportError is returned when a report file cannot be saved.
func WriteReportError(path string, err error) error {
	return &gn.Error{
		Code: errcode.WriteReportError,
		Msg:  "Cannot save report to <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: write report %s: %w", caller(), path, err),
	}
}
