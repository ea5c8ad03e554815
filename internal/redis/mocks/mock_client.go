package mocks

import (
	"ai-accountant/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockClientInterface является моком для redis.ClientInterface интерфейса
type MockClientInterface struct {
	mock.Mock
}

// SaveFileSummary мок для SaveFileSummary
func (m *MockClientInterface) SaveFileSummary(summary *models.AnomalySummary) error {
	args := m.Called(summary)
	return args.Error(0)
}

// GetFileSummary мок для GetFileSummary
func (m *MockClientInterface) GetFileSummary(fileID int64) (*models.AnomalySummary, error) {
	args := m.Called(fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnomalySummary), args.Error(1)
}

// IncrementReasonStats мок для IncrementReasonStats
func (m *MockClientInterface) IncrementReasonStats(reasonCounts map[string]int) error {
	args := m.Called(reasonCounts)
	return args.Error(0)
}

// GetReasonStats мок для GetReasonStats
func (m *MockClientInterface) GetReasonStats() (map[string]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// GetProcessedFileCount мок для GetProcessedFileCount
func (m *MockClientInterface) GetProcessedFileCount() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// Close мок для Close
func (m *MockClientInterface) Close() error {
	args := m.Called()
	return args.Error(0)
}
