package cmd

import (
	"fmt"

	"github.com/fairdev/fds/internal/contract"
	"github.com/fairdev/fds/internal/resultcache"
	"github.com/fairdev/fds/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations,
// without the full sharedSetup (no commit stream to validate against).
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	if err := resultcache.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize result cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheMigrateSetup loads just enough configuration to run a migration. It
// skips resultcache.InitStores, whose store constructor migrates the schema
// to the latest version; this way only the requested target version is
// applied.
func cacheMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

func cacheMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheMigrateSetup()
}

// cacheCmd groups result-cache management subcommands.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the pipeline result cache.",
	Long: `Manage the result cache that speeds up repeated scoring runs over
the same commit stream file.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled).

Subcommands:
  status  - Show cache statistics and connection info
  clear   - Remove all cached results
  migrate - Apply or roll back result cache schema migrations

Examples:
  # Check cache status
  fds cache status

  # Clear cache after editing a commit stream file
  fds cache clear`,
}

// cacheClearCmd clears the result cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached pipeline results",
	Long: `Delete all cached pipeline run results from the configured backend.

For SQLite: deletes the database file.
For MySQL/PostgreSQL: drops the cache table.

Examples:
  fds cache clear
  FDS_CACHE_BACKEND=mysql FDS_CACHE_DB_CONNECT="..." fds cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := resultcache.ClearCache(cfg.CacheBackend, contract.GetDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheMigrateCmd applies or rolls back result cache schema migrations.
var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back result cache schema migrations",
	Long: `Run schema migrations against the result cache database.

--target-version -1 (default) migrates to the latest schema version.
--target-version 0 rolls back every migration, leaving an empty database.
Any other positive value migrates to that exact version.

Examples:
  fds cache migrate
  fds cache migrate --target-version 0
  FDS_CACHE_BACKEND=postgresql FDS_CACHE_DB_CONNECT="..." fds cache migrate`,
	PreRunE: cacheMigrateSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		targetVersion, err := cmd.Flags().GetInt("target-version")
		if err != nil {
			contract.LogFatal("Failed to read target-version flag", err)
		}
		if err := resultcache.MigrateResultCache(cfg.CacheBackend, cfg.CacheDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to migrate result cache", err)
		}
	},
}

// cacheStatusCmd shows result cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the result cache: backend type,
connection status, total entries, and oldest/newest entry timestamps.`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := resultcache.Manager.GetResultStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		resultcache.PrintStatus(status)
	},
}
