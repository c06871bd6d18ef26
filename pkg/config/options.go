package config

import (
	"strings"
	"time"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseMaxConns sets the size of the connection pool.
func OptDatabaseMaxConns(i int) Option {
	return func(c *Config) {
		if isValidInt("Database MaxConns", i) {
			c.Database.MaxConns = i
		}
	}
}

// OptOccurrenceBaseURL sets the occurrence API base URL.
// A trailing slash is removed.
func OptOccurrenceBaseURL(s string) Option {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidURL("Occurrence BaseURL", s) {
			c.Occurrence.BaseURL = s
		}
	}
}

// OptOccurrenceTimeout sets the HTTP timeout of the occurrence client.
func OptOccurrenceTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Occurrence Timeout", d) {
			c.Occurrence.Timeout = d
		}
	}
}

// OptOccurrenceRateLimit sets requests per second for the occurrence client.
func OptOccurrenceRateLimit(f float64) Option {
	return func(c *Config) {
		if isValidFloat("Occurrence RateLimit", f) {
			c.Occurrence.RateLimit = f
		}
	}
}

// OptOccurrenceCacheTTL sets how long per-taxon responses are cached.
func OptOccurrenceCacheTTL(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Occurrence CacheTTL", d) {
			c.Occurrence.CacheTTL = d
		}
	}
}

// OptOccurrenceCategories restricts occurrence search to given
// conservation-status codes. Codes are upper-cased, empty entries dropped.
func OptOccurrenceCategories(ss []string) Option {
	var res []string
	for _, s := range ss {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			res = append(res, s)
		}
	}
	return func(c *Config) {
		if len(res) > 0 {
			c.Occurrence.Categories = res
		}
	}
}

// OptAssessmentBaseURL sets the assessment API base URL.
func OptAssessmentBaseURL(s string) Option {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidURL("Assessment BaseURL", s) {
			c.Assessment.BaseURL = s
		}
	}
}

// OptAssessmentToken sets the assessment API token.
func OptAssessmentToken(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Assessment Token", s) {
			c.Assessment.Token = s
		}
	}
}

// OptAssessmentTimeout sets the HTTP timeout of the assessment client.
func OptAssessmentTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Assessment Timeout", d) {
			c.Assessment.Timeout = d
		}
	}
}

// OptAssessmentRateLimit sets requests per second for the assessment client.
func OptAssessmentRateLimit(f float64) Option {
	return func(c *Config) {
		if isValidFloat("Assessment RateLimit", f) {
			c.Assessment.RateLimit = f
		}
	}
}

// OptAssessmentCacheTTL sets how long assessment lookups are cached.
func OptAssessmentCacheTTL(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Assessment CacheTTL", d) {
			c.Assessment.CacheTTL = d
		}
	}
}

// OptSyncPageSize sets the occurrence page size.
// Values above MaxPageSize are rejected.
func OptSyncPageSize(i int) Option {
	return func(c *Config) {
		if !isValidInt("Sync PageSize", i) {
			return
		}
		if i > MaxPageSize {
			warnTooBig("Sync PageSize", i, MaxPageSize)
			return
		}
		c.Sync.PageSize = i
	}
}

// OptSyncInitialDate sets the delta-window start for never-synced clusters.
// Format: YYYY-MM-DD.
func OptSyncInitialDate(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidDate("Sync InitialDate", s) {
			c.Sync.InitialDate = s
		}
	}
}

// OptSyncEnrichJobs sets the number of concurrent enrichment tasks.
func OptSyncEnrichJobs(i int) Option {
	return func(c *Config) {
		if isValidInt("Sync EnrichJobs", i) {
			c.Sync.EnrichJobs = i
		}
	}
}

// OptSyncEnrichTimeout bounds one enrichment task.
func OptSyncEnrichTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Sync EnrichTimeout", d) {
			c.Sync.EnrichTimeout = d
		}
	}
}

// OptSyncWithProgress turns the page progress bar on or off.
// Runtime-only field - not in ToOptions().
func OptSyncWithProgress(b bool) Option {
	return func(c *Config) {
		c.Sync.WithProgress = b
	}
}

// OptSyncNoEnrich turns enrichment of created species off.
// Runtime-only field - not in ToOptions().
func OptSyncNoEnrich(b bool) Option {
	return func(c *Config) {
		c.Sync.NoEnrich = b
	}
}

// OptSyncKeepReports keeps enrichment reports until Wait.
// Runtime-only field - not in ToOptions().
func OptSyncKeepReports(b bool) Option {
	return func(c *Config) {
		c.Sync.KeepReports = b
	}
}

// OptServerPort sets the HTTP API port.
func OptServerPort(i int) Option {
	return func(c *Config) {
		if isValidInt("Server Port", i) {
			c.Server.Port = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
