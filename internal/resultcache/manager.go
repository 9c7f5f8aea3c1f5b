package resultcache

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/fairdev/fds/internal/contract"
	"github.com/fairdev/fds/schema"
)

// StoreManager owns the single active ResultStore for the process.
type StoreManager struct {
	sync.RWMutex
	store contract.ResultStore
}

var _ contract.CacheManager = &StoreManager{}

// GetResultStore returns the active ResultStore.
func (m *StoreManager) GetResultStore() contract.ResultStore {
	m.RLock()
	defer m.RUnlock()
	return m.store
}

// Close closes the active ResultStore, if any.
func (m *StoreManager) Close() error {
	m.RLock()
	defer m.RUnlock()
	if m.store != nil {
		return m.store.Close()
	}
	return nil
}

// Global Manager instance used by the CLI and MCP surface.
var (
	Manager  = &StoreManager{}
	initOnce sync.Once
)

// InitStores initializes the global Manager's result store. backend may be
// schema.NoneBackend to disable caching entirely; connStr may be empty for
// sqlite (falls back to contract.GetDBFilePath()).
func InitStores(backend schema.DatabaseBackend, connStr string) error {
	var initErr error
	initOnce.Do(func() {
		store, err := NewStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize result cache: %w", err)
			return
		}
		Manager.Lock()
		defer Manager.Unlock()
		Manager.store = store
	})
	return initErr
}

// ClearCache clears the result cache for the given backend. For sqlite it
// deletes the database file; for mysql/postgresql it drops the table; none
// is a no-op.
func ClearCache(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		path := dbFilePath
		if path == "" {
			path = contract.GetDBFilePath()
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove sqlite result cache file %s: %w", path, err)
		}
		return nil
	case schema.MySQLBackend:
		return clearSQLTable("mysql", connStr)
	case schema.PostgreSQLBackend:
		return clearSQLTable("pgx", connStr)
	case schema.NoneBackend:
		return nil
	default:
		return fmt.Errorf("unsupported cache backend %q: %w", backend, schema.ErrInvalidConfig)
	}
}

func clearSQLTable(driverName, connStr string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}
	if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", resultTable)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", resultTable, err)
	}
	return nil
}

// PrintStatus prints result-cache status information to stdout.
func PrintStatus(status schema.CacheStatus) {
	fmt.Printf("Cache Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		fmt.Printf("Last Entry: %s\n", status.LastEntryTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Entry: %s\n", status.OldestEntryTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Table Size: %d bytes\n", status.TableSizeBytes)
}
