// Package config provides configuration management for biosync.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode, max_conns
//   - Occurrence: base_url, timeout, rate_limit, cache_ttl, categories
//   - Assessment: base_url, token, timeout, rate_limit, cache_ttl
//   - Sync: page_size, initial_date, enrich_jobs, enrich_timeout
//   - Server: port
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Sync.WithProgress, Sync.NoEnrich, Sync.KeepReports (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use BIOSYNC_ prefix with underscores for nesting:
//
//	BIOSYNC_DATABASE_HOST=localhost
//	BIOSYNC_ASSESSMENT_TOKEN=secret
//	BIOSYNC_SYNC_PAGE_SIZE=300
//	BIOSYNC_LOG_LEVEL=info
package config

import (
	"runtime"
	"time"
)

// MaxPageSize is the largest page the occurrence API serves.
const MaxPageSize = 300

// Config represents the complete biosync configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Occurrence configures the remote occurrence-record API client.
	Occurrence OccurrenceConfig `mapstructure:"occurrence" yaml:"occurrence"`

	// Assessment configures the remote conservation-assessment API client.
	Assessment AssessmentConfig `mapstructure:"assessment" yaml:"assessment"`

	// Sync contains settings of the synchronization pipeline.
	Sync SyncConfig `mapstructure:"sync" yaml:"sync"`

	// Server contains settings of the HTTP API.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// MaxConns is the size of the connection pool. The pool is long-lived
	// and shared by all requests of a running process.
	MaxConns int `mapstructure:"max_conns" yaml:"max_conns"`
}

// OccurrenceConfig contains settings for the occurrence API client.
type OccurrenceConfig struct {
	// BaseURL of the occurrence API, for example https://api.gbif.org/v1.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Timeout of a single HTTP request.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// RateLimit is the maximum number of requests per second the client
	// sends. Requests over the limit wait, they are never dropped.
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit"`

	// CacheTTL is how long per-taxon vernacular names and media lists are
	// kept in memory. Conservation categories are never cached.
	CacheTTL time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`

	// Categories optionally restricts occurrence search to the given
	// conservation-status codes. Empty means no restriction.
	Categories []string `mapstructure:"categories" yaml:"categories"`
}

// AssessmentConfig contains settings for the assessment API client.
type AssessmentConfig struct {
	// BaseURL of the assessment API, for example
	// https://api.iucnredlist.org/api/v4.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Token is the API token sent as a bearer authorization header.
	Token string `mapstructure:"token" yaml:"token"`

	// Timeout of a single HTTP request.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// RateLimit is the maximum number of requests per second.
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit"`

	// CacheTTL is how long candidate-assessment lookups are cached.
	CacheTTL time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

// SyncConfig contains settings of the Sync Orchestrator.
type SyncConfig struct {
	// PageSize is the number of occurrences requested per page.
	// It cannot exceed MaxPageSize.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// InitialDate (YYYY-MM-DD) is the start of the delta window for
	// clusters that were never synchronized.
	InitialDate string `mapstructure:"initial_date" yaml:"initial_date"`

	// EnrichJobs limits how many enrichment tasks run at the same time.
	EnrichJobs int `mapstructure:"enrich_jobs" yaml:"enrich_jobs"`

	// EnrichTimeout bounds a single species enrichment task.
	EnrichTimeout time.Duration `mapstructure:"enrich_timeout" yaml:"enrich_timeout"`

	// WithProgress shows a progress bar while pages are fetched.
	// Runtime-only, set by CLI.
	WithProgress bool `mapstructure:"-" yaml:"-"`

	// NoEnrich disables enrichment of created species.
	// Runtime-only, set by CLI.
	NoEnrich bool `mapstructure:"-" yaml:"-"`

	// KeepReports holds enrichment reports until the command waits for
	// them. A server logs reports instead. Runtime-only, set by CLI.
	KeepReports bool `mapstructure:"-" yaml:"-"`
}

// ServerConfig contains settings of the HTTP API.
type ServerConfig struct {
	// Port the HTTP API listens on.
	Port int `mapstructure:"port" yaml:"port"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (text without timestamps).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "biosync",
			SSLMode:  "disable",
			MaxConns: 10,
		},
		Occurrence: OccurrenceConfig{
			BaseURL:   "https://api.gbif.org/v1",
			Timeout:   30 * time.Second,
			RateLimit: 3,
			CacheTTL:  6 * time.Hour,
		},
		Assessment: AssessmentConfig{
			BaseURL:   "https://api.iucnredlist.org/api/v4",
			Timeout:   30 * time.Second,
			RateLimit: 2,
			CacheTTL:  24 * time.Hour,
		},
		Sync: SyncConfig{
			PageSize:      MaxPageSize,
			InitialDate:   "2000-01-01",
			EnrichJobs:    4,
			EnrichTimeout: 5 * time.Minute,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
