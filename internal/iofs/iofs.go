// Package iofs prepares the file system layout of biosync, finds import
// files and saves enrichment reports.
package iofs

import (
	_ "embed"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/ecoglobe/biosync/pkg/config"
	"github.com/gnames/gnfmt"
)

// ConfigYAML is the default configuration written on the first run.
//
//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates configuration, log and report directories.
func EnsureDirs(homeDir string) error {
	for _, v := range []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
		config.ReportDir(homeDir),
	} {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}
	return nil
}

// EnsureConfigFile writes the default config.yaml unless it exists.
// An existing file is never overwritten.
func EnsureConfigFile(homeDir string) error {
	path := config.ConfigFilePath(homeDir)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(path, err)
	}
	return nil
}

// ReadFile reads a user-provided file.
func ReadFile(path string) ([]byte, error) {
	res, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	return res, nil
}

// ImportFiles resolves an import path. A file is returned as is, a
// directory gives its *.json files sorted by name. Subdirectories are
// not visited.
func ImportFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	var res []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		res = append(res, filepath.Join(path, e.Name()))
	}
	if len(res) == 0 {
		return nil, NoImportFilesError(path)
	}
	slices.Sort(res)
	return res, nil
}

// SaveReport writes v as indented JSON to the report directory and
// returns the file path. The file name is the prefix followed by the
// UTC time of t.
func SaveReport(homeDir, prefix string, t time.Time, v any) (string, error) {
	name := prefix + "-" + t.UTC().Format("20060102-150405") + ".json"
	path := filepath.Join(config.ReportDir(homeDir), name)

	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(v)
	if err != nil {
		return "", WriteReportError(path, err)
	}
	if err = touchDir(config.ReportDir(homeDir)); err != nil {
		return "", err
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return "", WriteReportError(path, err)
	}
	return path, nil
}
