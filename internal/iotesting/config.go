// Package iotesting provides shared test utilities: test configuration
// for integration tests and in-memory implementations of stores and
// remote sources for unit tests.
package iotesting

import (
	"os"
	"strconv"

	"github.com/ecoglobe/biosync/pkg/config"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "biosync_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// Database credentials can be overridden with BIOSYNC_DATABASE_HOST,
// BIOSYNC_DATABASE_PORT, BIOSYNC_DATABASE_USER and
// BIOSYNC_DATABASE_PASSWORD. The database name is always TestDatabaseName.
func GetTestConfig() *config.Config {
	cfg := config.New()

	var opts []config.Option
	if v := os.Getenv("BIOSYNC_DATABASE_HOST"); v != "" {
		opts = append(opts, config.OptDatabaseHost(v))
	}
	if v := os.Getenv("BIOSYNC_DATABASE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			opts = append(opts, config.OptDatabasePort(port))
		}
	}
	if v := os.Getenv("BIOSYNC_DATABASE_USER"); v != "" {
		opts = append(opts, config.OptDatabaseUser(v))
	}
	if v := os.Getenv("BIOSYNC_DATABASE_PASSWORD"); v != "" {
		opts = append(opts, config.OptDatabasePassword(v))
	}
	opts = append(opts, config.OptDatabaseDatabase(TestDatabaseName))
	cfg.Update(opts)

	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}
