package resultcache

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/fairdev/fds/schema"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Target migration version constants.
const (
	targetLatestVersion  = -1
	targetInitialVersion = 0
)

//go:embed migrations/sqlite/*.sql migrations/mysql/*.sql migrations/postgresql/*.sql
var migrationsFS embed.FS

func migrationDialect(backend schema.DatabaseBackend) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		return "sqlite", nil
	case schema.MySQLBackend:
		return "mysql", nil
	case schema.PostgreSQLBackend:
		return "postgresql", nil
	default:
		return "", fmt.Errorf("unsupported backend %q for migration: %w", backend, schema.ErrInvalidConfig)
	}
}

func migrateDriverFor(db *sql.DB, backend schema.DatabaseBackend) (database.Driver, error) {
	var (
		driver database.Driver
		err    error
	)
	switch backend {
	case schema.SQLiteBackend:
		driver, err = sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	case schema.MySQLBackend:
		driver, err = mysql.WithInstance(db, &mysql.Config{})
	case schema.PostgreSQLBackend:
		driver, err = pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	default:
		return nil, fmt.Errorf("unsupported backend %q for migration: %w", backend, schema.ErrInvalidConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s migrate driver: %w", backend, err)
	}
	return driver, nil
}

func migrateSourceFor(backend schema.DatabaseBackend) (source.Driver, error) {
	dialect, err := migrationDialect(backend)
	if err != nil {
		return nil, err
	}
	sub, err := fs.Sub(migrationsFS, "migrations/"+dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to access migrations directory for %s: %w", dialect, err)
	}
	return iofs.New(sub, ".")
}

func newMigrate(db *sql.DB, backend schema.DatabaseBackend) (*migrate.Migrate, error) {
	driver, err := migrateDriverFor(db, backend)
	if err != nil {
		return nil, err
	}
	src, err := migrateSourceFor(backend)
	if err != nil {
		return nil, err
	}
	m, err := migrate.NewWithInstance("iofs", src, "fds", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// EnsureSchema brings db, an already-open connection for backend, up to the
// latest result-cache schema version. NewStore calls this on every startup
// so the migration files under migrations/ are the single source of truth
// for the table shape, instead of a second hand-rolled CREATE TABLE here.
func EnsureSchema(db *sql.DB, backend schema.DatabaseBackend) error {
	m, err := newMigrate(db, backend)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply result cache schema: %w", err)
	}
	return nil
}

func openMigrationDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	driverName, dsn, err := driverFor(backend, connStr)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func executeMigration(m *migrate.Migrate, targetVersion int) error {
	currentVersion, dirty, err := m.Version()
	isNewDatabase := err == migrate.ErrNilVersion
	if err != nil && !isNewDatabase {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in a dirty state at version %d; fix manually or force version", currentVersion)
	}

	switch {
	case targetVersion == targetLatestVersion:
		err = m.Up()
		if err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("failed to migrate to latest version: %w", err)
		}
		if err == migrate.ErrNoChange {
			fmt.Println("No migration needed. Result cache schema is already at the latest version.")
		} else {
			newVersion, _, _ := m.Version()
			if isNewDatabase {
				fmt.Printf("Migrated new result cache database to version %d.\n", newVersion)
			} else {
				fmt.Printf("Migrated result cache from version %d to version %d.\n", currentVersion, newVersion)
			}
		}
	case targetVersion == targetInitialVersion:
		err = m.Down()
		if err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("failed to roll back to version 0: %w", err)
		}
		if err == migrate.ErrNoChange {
			fmt.Println("No migration needed. Result cache schema is already at version 0.")
		} else {
			fmt.Printf("Rolled back result cache from version %d to version 0.\n", currentVersion)
		}
	case targetVersion > targetInitialVersion:
		err = m.Migrate(uint(targetVersion))
		if err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("failed to migrate to version %d: %w", targetVersion, err)
		}
		if err == migrate.ErrNoChange {
			fmt.Printf("No migration needed. Result cache schema is already at version %d.\n", targetVersion)
		} else {
			fmt.Printf("Migrated result cache from version %d to version %d.\n", currentVersion, targetVersion)
		}
	default:
		return fmt.Errorf("invalid target version %d: %w", targetVersion, schema.ErrInvalidConfig)
	}
	return nil
}

// MigrateResultCache runs schema migrations for the result cache. A
// targetVersion of -1 migrates to the latest version, 0 rolls back every
// migration, and a positive value migrates to that exact version.
func MigrateResultCache(backend schema.DatabaseBackend, connStr string, targetVersion int) error {
	if backend == schema.NoneBackend {
		return fmt.Errorf("migrations are not supported for none backend: %w", schema.ErrInvalidConfig)
	}

	db, err := openMigrationDB(backend, connStr)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	m, err := newMigrate(db, backend)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	return executeMigration(m, targetVersion)
}
