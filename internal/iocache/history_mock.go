package iocache

import (
	"github.com/huangsam/radonrun/internal/contract"
	"github.com/huangsam/radonrun/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryManager is a mock implementation of HistoryManager for testing.
type MockHistoryManager struct {
	mock.Mock
}

var _ contract.HistoryManager = &MockHistoryManager{} // Compile-time check

// GetHistoryStore implements the HistoryManager interface.
func (m *MockHistoryManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// RecordRun implements the HistoryStore interface.
func (m *MockHistoryStore) RecordRun(record schema.RunRecord) (int64, error) {
	args := m.Called(record)
	return args.Get(0).(int64), args.Error(1)
}

// ListRuns implements the HistoryStore interface.
func (m *MockHistoryStore) ListRuns(projectPath string, limit int) ([]schema.RunRecord, error) {
	args := m.Called(projectPath, limit)
	records, _ := args.Get(0).([]schema.RunRecord)
	return records, args.Error(1)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.RunRecord)
	return records, args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
