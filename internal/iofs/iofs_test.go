package iofs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirs(t *testing.T) {
	home := t.TempDir()

	// repeated calls are harmless
	for range 2 {
		require.NoError(t, EnsureDirs(home))
	}

	for _, v := range [][]string{
		{".config", "biosync"},
		{".local", "share", "biosync", "logs"},
		{".local", "share", "biosync", "reports"},
	} {
		dir := filepath.Join(append([]string{home}, v...)...)
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}
}

func TestTouchDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, touchDir(dir))
	require.NoError(t, touchDir(dir))

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	err := touchDir(filepath.Join(file, "sub"))
	assert.Error(t, err, "a file is in the way")
}

func TestEnsureConfigFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, EnsureDirs(home))
	require.NoError(t, EnsureConfigFile(home))

	path := filepath.Join(home, ".config", "biosync", "config.yaml")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(content))

	t.Run("keeps edited file", func(t *testing.T) {
		custom := "database:\n  host: db.example.org\n"
		require.NoError(t, os.WriteFile(path, []byte(custom), 0644))
		require.NoError(t, EnsureConfigFile(home))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, custom, string(content))
	})

	t.Run("missing config dir", func(t *testing.T) {
		err := EnsureConfigFile(t.TempDir())
		assert.Error(t, err)
	})
}

func TestConfigYAML_Embedded(t *testing.T) {
	assert.NotEmpty(t, ConfigYAML)
	for _, v := range []string{"database:", "occurrence:", "assessment:",
		"sync:", "server:", "log:", "BIOSYNC_"} {
		assert.Contains(t, ConfigYAML, v)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "species.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0644))

	res, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(res))

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestImportFiles(t *testing.T) {
	dir := t.TempDir()
	for _, v := range []string{"b.json", "a.JSON", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, v), []byte(`[]`), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0755))

	t.Run("directory", func(t *testing.T) {
		res, err := ImportFiles(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "a.JSON"),
			filepath.Join(dir, "b.json"),
		}, res)
	})

	t.Run("single file", func(t *testing.T) {
		path := filepath.Join(dir, "notes.txt")
		res, err := ImportFiles(path)
		require.NoError(t, err)
		assert.Equal(t, []string{path}, res)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := ImportFiles(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := ImportFiles(filepath.Join(dir, "missing"))
		assert.Error(t, err)
	})
}

func TestSaveReport(t *testing.T) {
	home := t.TempDir()
	at := time.Date(2024, 5, 1, 10, 30, 15, 0, time.UTC)
	data := map[string]int{"enriched": 3}

	path, err := SaveReport(home, "enrich", at, data)
	require.NoError(t, err)
	assert.Equal(t, "enrich-20240501-103015.json", filepath.Base(path))
	assert.True(t, strings.HasPrefix(path,
		filepath.Join(home, ".local", "share", "biosync", "reports")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var res map[string]int
	require.NoError(t, json.Unmarshal(content, &res))
	assert.Equal(t, data, res)

	_, err = SaveReport(home, "bad", at, make(chan int))
	assert.Error(t, err, "channels cannot be encoded")
}
