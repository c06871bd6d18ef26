package config

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Sync.WithProgress,
// Sync.NoEnrich, Sync.KeepReports).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	var d time.Duration
	var f float64

	s = c.Database.Host
	if s != "" {
		res = append(res, OptDatabaseHost(s))
	}
	i = c.Database.Port
	if i > 0 {
		res = append(res, OptDatabasePort(i))
	}
	s = c.Database.User
	if s != "" {
		res = append(res, OptDatabaseUser(s))
	}
	s = c.Database.Password
	if s != "" {
		res = append(res, OptDatabasePassword(s))
	}
	s = c.Database.Database
	if s != "" {
		res = append(res, OptDatabaseDatabase(s))
	}
	s = c.Database.SSLMode
	if s != "" {
		res = append(res, OptDatabaseSSLMode(s))
	}
	i = c.Database.MaxConns
	if i > 0 {
		res = append(res, OptDatabaseMaxConns(i))
	}

	s = c.Occurrence.BaseURL
	if s != "" {
		res = append(res, OptOccurrenceBaseURL(s))
	}
	d = c.Occurrence.Timeout
	if d > 0 {
		res = append(res, OptOccurrenceTimeout(d))
	}
	f = c.Occurrence.RateLimit
	if f > 0 {
		res = append(res, OptOccurrenceRateLimit(f))
	}
	d = c.Occurrence.CacheTTL
	if d > 0 {
		res = append(res, OptOccurrenceCacheTTL(d))
	}
	if len(c.Occurrence.Categories) > 0 {
		res = append(res, OptOccurrenceCategories(c.Occurrence.Categories))
	}

	s = c.Assessment.BaseURL
	if s != "" {
		res = append(res, OptAssessmentBaseURL(s))
	}
	s = c.Assessment.Token
	if s != "" {
		res = append(res, OptAssessmentToken(s))
	}
	d = c.Assessment.Timeout
	if d > 0 {
		res = append(res, OptAssessmentTimeout(d))
	}
	f = c.Assessment.RateLimit
	if f > 0 {
		res = append(res, OptAssessmentRateLimit(f))
	}
	d = c.Assessment.CacheTTL
	if d > 0 {
		res = append(res, OptAssessmentCacheTTL(d))
	}

	i = c.Sync.PageSize
	if i > 0 {
		res = append(res, OptSyncPageSize(i))
	}
	s = c.Sync.InitialDate
	if s != "" {
		res = append(res, OptSyncInitialDate(s))
	}
	i = c.Sync.EnrichJobs
	if i > 0 {
		res = append(res, OptSyncEnrichJobs(i))
	}
	d = c.Sync.EnrichTimeout
	if d > 0 {
		res = append(res, OptSyncEnrichTimeout(d))
	}

	i = c.Server.Port
	if i > 0 {
		res = append(res, OptServerPort(i))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidFloat(name string, f float64) bool {
	res := f > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %v", name, f)
	}
	return res
}

func isValidDuration(name string, d time.Duration) bool {
	res := d > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive duration, ignoring %s", name, d)
	}
	return res
}

func isValidURL(name, s string) bool {
	u, err := url.Parse(s)
	res := err == nil && (u.Scheme == "http" || u.Scheme == "https") &&
		u.Host != ""
	if !res {
		gn.Warn("<em>%s</em> is not a valid http(s) URL, ignoring '%s'", name, s)
	}
	return res
}

func isValidDate(name, s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	res := err == nil
	if !res {
		gn.Warn("<em>%s</em> has to be in YYYY-MM-DD format, ignoring '%s'",
			name, s)
	}
	return res
}

func warnTooBig(name string, i, limit int) {
	gn.Warn("<em>%s</em> cannot exceed %d, ignoring %d", name, limit, i)
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
