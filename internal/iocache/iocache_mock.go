package iocache

import (
	"time"

	"github.com/huangsam/debtboard/internal/contract"
	"github.com/huangsam/debtboard/schema"
	"github.com/stretchr/testify/mock"
)

// MockArchiveManager is a mock implementation of ArchiveManager for testing.
type MockArchiveManager struct {
	mock.Mock
}

var _ contract.ArchiveManager = &MockArchiveManager{} // Compile-time check

// GetArchiveStore implements the ArchiveManager interface.
func (m *MockArchiveManager) GetArchiveStore() contract.ArchiveStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ArchiveStore)
	return store
}

// MockArchiveStore is a mock implementation of ArchiveStore for testing.
type MockArchiveStore struct {
	mock.Mock
}

var _ contract.ArchiveStore = &MockArchiveStore{} // Compile-time check

// SaveReport implements the ArchiveStore interface.
func (m *MockArchiveStore) SaveReport(report *schema.TechnicalDebtReport, source string, savedAt time.Time) (int64, error) {
	args := m.Called(report, source, savedAt)
	return args.Get(0).(int64), args.Error(1)
}

// ListReports implements the ArchiveStore interface.
func (m *MockArchiveStore) ListReports(limit int) ([]schema.ReportRunRecord, error) {
	args := m.Called(limit)
	records, _ := args.Get(0).([]schema.ReportRunRecord)
	return records, args.Error(1)
}

// GetTrend implements the ArchiveStore interface.
func (m *MockArchiveStore) GetTrend() ([]schema.TrendData, error) {
	args := m.Called()
	trend, _ := args.Get(0).([]schema.TrendData)
	return trend, args.Error(1)
}

// AllFileRecords implements the ArchiveStore interface.
func (m *MockArchiveStore) AllFileRecords() ([]schema.FileRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.FileRecord)
	return records, args.Error(1)
}

// GetStatus implements the ArchiveStore interface.
func (m *MockArchiveStore) GetStatus() (schema.ArchiveStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.ArchiveStatus), args.Error(1)
}

// Close implements the ArchiveStore interface.
func (m *MockArchiveStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
