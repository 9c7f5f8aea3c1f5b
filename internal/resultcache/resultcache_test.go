package resultcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fairdev/fds/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoneBackendIsANoOp(t *testing.T) {
	store, err := NewStore(schema.NoneBackend, "")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set("key", []byte("value")))
	_, found, err := store.Get("key")
	require.NoError(t, err)
	assert.False(t, found)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
}

func TestSQLiteStoreRoundTrips(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "result.db")
	store, err := NewStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, found, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set("key-1", []byte("payload")))
	value, found, err := store.Get("key-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("payload"), value)

	require.NoError(t, store.Set("key-1", []byte("updated")))
	value, found, err = store.Get("key-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("updated"), value)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(1), status.TotalEntries)
}

func TestSQLiteStoreReportsPayloadSize(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "result.db")
	store, err := NewStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set("key-1", []byte("hello")))
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(len("hello")), status.TableSizeBytes)
}

func TestClearCacheRemovesSQLiteFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "result.db")
	store, err := NewStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set("key", []byte("value")))
	require.NoError(t, store.Close())

	_, statErr := os.Stat(dbPath)
	require.NoError(t, statErr)

	require.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
	_, statErr = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(statErr))
}
