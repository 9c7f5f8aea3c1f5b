package resultcache

import (
	"github.com/fairdev/fds/internal/contract"
	"github.com/fairdev/fds/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of contract.CacheManager.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{}

// GetResultStore implements contract.CacheManager.
func (m *MockCacheManager) GetResultStore() contract.ResultStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ResultStore)
	return store
}

// Close implements contract.CacheManager.
func (m *MockCacheManager) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockResultStore is a mock implementation of contract.ResultStore.
type MockResultStore struct {
	mock.Mock
}

var _ contract.ResultStore = &MockResultStore{}

// Get implements contract.ResultStore.
func (m *MockResultStore) Get(key string) ([]byte, bool, error) {
	args := m.Called(key)
	data, _ := args.Get(0).([]byte)
	return data, args.Bool(1), args.Error(2)
}

// Set implements contract.ResultStore.
func (m *MockResultStore) Set(key string, value []byte) error {
	args := m.Called(key, value)
	return args.Error(0)
}

// Close implements contract.ResultStore.
func (m *MockResultStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements contract.ResultStore.
func (m *MockResultStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}
