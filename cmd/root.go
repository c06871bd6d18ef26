/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/ecoglobe/biosync/internal/iofs"
	"github.com/ecoglobe/biosync/internal/iologger"
	"github.com/ecoglobe/biosync/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: versionString(),
		Use:     "biosync",
		Short:   "Synchronize biodiversity occurrences into species and country clusters",
		Long: `biosync keeps a PostgreSQL database of species and per-country
clusters up to date with a remote occurrence API, and enriches species
with conservation categories, common names, media and assessment
narratives.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (BIOSYNC_*)
  3. Config file (~/.config/biosync/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (database.host → BIOSYNC_DATABASE_HOST).

  Examples:
    BIOSYNC_DATABASE_HOST           PostgreSQL host
    BIOSYNC_DATABASE_PASSWORD       PostgreSQL password
    BIOSYNC_ASSESSMENT_TOKEN        Assessment API token
    BIOSYNC_SYNC_PAGE_SIZE          Occurrences per page (max 300)
    BIOSYNC_LOG_LEVEL               Log level (debug/info/warn/error)`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "biosync version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for biosync")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getSyncCmd(),
		getRecomputeCmd(),
		getEnrichCmd(),
		getImportCmd(),
		getServeCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// flags of the subcommand override config file and environment
	cfg.Update(flagOptions(cmd))

	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", config.ConfigFilePath(homeDir))
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// We bind variables manually so it is clear which env variables are
	// allowed. They match the fields of config.ToOptions().
	v.SetEnvPrefix("BIOSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.host", "BIOSYNC_DATABASE_HOST")
	v.BindEnv("database.port", "BIOSYNC_DATABASE_PORT")
	v.BindEnv("database.user", "BIOSYNC_DATABASE_USER")
	v.BindEnv("database.password", "BIOSYNC_DATABASE_PASSWORD")
	v.BindEnv("database.database", "BIOSYNC_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "BIOSYNC_DATABASE_SSL_MODE")
	v.BindEnv("database.max_conns", "BIOSYNC_DATABASE_MAX_CONNS")

	// Occurrence API
	v.BindEnv("occurrence.base_url", "BIOSYNC_OCCURRENCE_BASE_URL")
	v.BindEnv("occurrence.timeout", "BIOSYNC_OCCURRENCE_TIMEOUT")
	v.BindEnv("occurrence.rate_limit", "BIOSYNC_OCCURRENCE_RATE_LIMIT")
	v.BindEnv("occurrence.cache_ttl", "BIOSYNC_OCCURRENCE_CACHE_TTL")
	v.BindEnv("occurrence.categories", "BIOSYNC_OCCURRENCE_CATEGORIES")

	// Assessment API
	v.BindEnv("assessment.base_url", "BIOSYNC_ASSESSMENT_BASE_URL")
	v.BindEnv("assessment.token", "BIOSYNC_ASSESSMENT_TOKEN")
	v.BindEnv("assessment.timeout", "BIOSYNC_ASSESSMENT_TIMEOUT")
	v.BindEnv("assessment.rate_limit", "BIOSYNC_ASSESSMENT_RATE_LIMIT")
	v.BindEnv("assessment.cache_ttl", "BIOSYNC_ASSESSMENT_CACHE_TTL")

	// Sync
	v.BindEnv("sync.page_size", "BIOSYNC_SYNC_PAGE_SIZE")
	v.BindEnv("sync.initial_date", "BIOSYNC_SYNC_INITIAL_DATE")
	v.BindEnv("sync.enrich_jobs", "BIOSYNC_SYNC_ENRICH_JOBS")
	v.BindEnv("sync.enrich_timeout", "BIOSYNC_SYNC_ENRICH_TIMEOUT")

	// Server
	v.BindEnv("server.port", "BIOSYNC_SERVER_PORT")

	// Log configuration
	v.BindEnv("log.level", "BIOSYNC_LOG_LEVEL")
	v.BindEnv("log.format", "BIOSYNC_LOG_FORMAT")
	v.BindEnv("log.destination", "BIOSYNC_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "BIOSYNC_JOBS_NUMBER")

	v.AutomaticEnv()
}
