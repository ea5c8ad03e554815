package mocks

import (
	"ai-accountant/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockLedgerService является моком для services.LedgerService интерфейса
type MockLedgerService struct {
	mock.Mock
}

// ProcessBatch мок для ProcessBatch
func (m *MockLedgerService) ProcessBatch(req *models.BatchRequest) (*models.BatchResult, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BatchResult), args.Error(1)
}

// ListFiles мок для ListFiles
func (m *MockLedgerService) ListFiles() ([]*models.FileSummary, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FileSummary), args.Error(1)
}

// GetFile мок для GetFile
func (m *MockLedgerService) GetFile(fileID int64) (*models.FileWithTransactions, error) {
	args := m.Called(fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FileWithTransactions), args.Error(1)
}

// GetFileSummary мок для GetFileSummary
func (m *MockLedgerService) GetFileSummary(fileID int64) (*models.AnomalySummary, error) {
	args := m.Called(fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnomalySummary), args.Error(1)
}

// GetAnomalyStats мок для GetAnomalyStats
func (m *MockLedgerService) GetAnomalyStats() (*models.AnomalyStats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnomalyStats), args.Error(1)
}
