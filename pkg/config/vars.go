package config

import "path/filepath"

// AppName is the directory name of biosync files under the home directory.
var AppName = "biosync"

// ConfigDir is ~/.config/biosync.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// ConfigFilePath is ~/.config/biosync/config.yaml.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

func dataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir is ~/.local/share/biosync/logs.
func LogDir(homeDir string) string {
	return filepath.Join(dataDir(homeDir), "logs")
}

// ReportDir keeps JSON reports of enrichment runs,
// ~/.local/share/biosync/reports.
func ReportDir(homeDir string) string {
	return filepath.Join(dataDir(homeDir), "reports")
}
