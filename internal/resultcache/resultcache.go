// Package resultcache persists full pipeline runs keyed by a content hash
// of the input commit stream, the way the teacher's iocache package caches
// git-log activity.
package resultcache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fairdev/fds/internal/contract"
	"github.com/fairdev/fds/schema"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver (pure Go, driver name "sqlite")
)

// resultTable is the only table this package ever writes. Unlike the
// teacher's cache store, which juggles multiple named caches, FDS has one
// result cache, so the name is a constant rather than a value threaded
// through every query.
const resultTable = "fds_result_cache"

// dialect bundles the handful of SQL phrasing a fixed three-column table
// needs across backends: how a row is upserted and how a bound parameter is
// written.
type dialect struct {
	upsert      string
	placeholder func(position int) string
}

var dialects = map[schema.DatabaseBackend]dialect{
	schema.MySQLBackend: {
		upsert: `INSERT INTO ` + resultTable + ` (cache_key, cache_value, cache_timestamp) VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE cache_value = VALUES(cache_value), cache_timestamp = VALUES(cache_timestamp)`,
		placeholder: func(int) string { return "?" },
	},
	schema.PostgreSQLBackend: {
		upsert: `INSERT INTO ` + resultTable + ` (cache_key, cache_value, cache_timestamp) VALUES ($1, $2, $3)
			ON CONFLICT (cache_key) DO UPDATE SET cache_value = excluded.cache_value, cache_timestamp = excluded.cache_timestamp`,
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	},
	schema.SQLiteBackend: {
		upsert: `INSERT INTO ` + resultTable + ` (cache_key, cache_value, cache_timestamp) VALUES (?, ?, ?)
			ON CONFLICT (cache_key) DO UPDATE SET cache_value = excluded.cache_value, cache_timestamp = excluded.cache_timestamp`,
		placeholder: func(int) string { return "?" },
	},
}

// StoreImpl is the concrete contract.ResultStore backed by a database/sql
// connection. A NoneBackend store has a nil db and every operation is a
// cheap no-op.
type StoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	d       dialect
}

var _ contract.ResultStore = &StoreImpl{}

// driverFor resolves the database/sql driver name and DSN for backend. A
// blank sqlite connStr falls back to the shared db file path.
func driverFor(backend schema.DatabaseBackend, connStr string) (driverName, dsn string, err error) {
	switch backend {
	case schema.SQLiteBackend:
		dsn = connStr
		if dsn == "" {
			dsn = contract.GetDBFilePath()
		}
		return "sqlite", dsn, nil
	case schema.MySQLBackend:
		return "mysql", connStr, nil
	case schema.PostgreSQLBackend:
		return "pgx", connStr, nil
	default:
		return "", "", fmt.Errorf("unsupported cache backend %q: %w", backend, schema.ErrInvalidConfig)
	}
}

// NewStore opens (and, if needed, creates) the result cache for backend.
// Schema creation is delegated to EnsureSchema so the migration files under
// migrations/ stay the single source of truth for the table shape, rather
// than duplicating a CREATE TABLE per dialect here too.
func NewStore(backend schema.DatabaseBackend, connStr string) (contract.ResultStore, error) {
	if backend == schema.NoneBackend {
		return &StoreImpl{backend: backend}, nil
	}

	d, ok := dialects[backend]
	if !ok {
		return nil, fmt.Errorf("unsupported cache backend %q: %w", backend, schema.ErrInvalidConfig)
	}

	driverName, dsn, err := driverFor(backend, connStr)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s result cache: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s result cache: %w", backend, err)
	}
	if err := EnsureSchema(db, backend); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &StoreImpl{db: db, backend: backend, d: d}, nil
}

// Get retrieves a cached result payload by key.
func (s *StoreImpl) Get(key string) ([]byte, bool, error) {
	if s.db == nil {
		return nil, false, nil
	}
	query := fmt.Sprintf("SELECT cache_value FROM %s WHERE cache_key = %s", resultTable, s.d.placeholder(1))
	var value []byte
	switch err := s.db.QueryRow(query, key).Scan(&value); {
	case err == nil:
		return value, true, nil
	case err == sql.ErrNoRows:
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("result cache lookup for %q failed: %w", key, err)
	}
}

// Set inserts or replaces a cached result payload.
func (s *StoreImpl) Set(key string, value []byte) error {
	if s.db == nil {
		return nil
	}
	if _, err := s.db.Exec(s.d.upsert, key, value, time.Now().Unix()); err != nil {
		return fmt.Errorf("result cache write for %q failed: %w", key, err)
	}
	return nil
}

// Close closes the underlying connection, if any.
func (s *StoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetStatus reports connection and occupancy information. Table size is the
// actual sum of stored payload bytes rather than a per-backend estimate:
// with one small fixed-shape table, SUM(LENGTH(cache_value)) is portable
// across sqlite/mysql/postgresql and needs no engine-specific catalog
// lookup to approximate.
func (s *StoreImpl) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{Backend: string(s.backend), Connected: s.db != nil}
	if s.db == nil {
		return status, nil
	}

	query := fmt.Sprintf(
		`SELECT COUNT(*), COALESCE(MIN(cache_timestamp), 0), COALESCE(MAX(cache_timestamp), 0), COALESCE(SUM(LENGTH(cache_value)), 0) FROM %s`,
		resultTable,
	)
	var oldestTs, lastTs int64
	if err := s.db.QueryRow(query).Scan(&status.TotalEntries, &oldestTs, &lastTs, &status.TableSizeBytes); err != nil {
		return status, fmt.Errorf("failed to read result cache status: %w", err)
	}
	if status.TotalEntries > 0 {
		status.OldestEntryTime = time.Unix(oldestTs, 0)
		status.LastEntryTime = time.Unix(lastTs, 0)
	}
	return status, nil
}
