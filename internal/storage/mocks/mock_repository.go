package mocks

import (
	"ai-accountant/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockLedgerRepository является моком для storage.LedgerRepository интерфейса
type MockLedgerRepository struct {
	mock.Mock
}

// SaveFile мок для SaveFile
func (m *MockLedgerRepository) SaveFile(file *models.UploadedFile, transactions []*models.TransactionRecord) (int64, error) {
	args := m.Called(file, transactions)
	return args.Get(0).(int64), args.Error(1)
}

// ListFiles мок для ListFiles
func (m *MockLedgerRepository) ListFiles() ([]*models.FileSummary, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FileSummary), args.Error(1)
}

// GetFile мок для GetFile
func (m *MockLedgerRepository) GetFile(fileID int64) (*models.FileWithTransactions, error) {
	args := m.Called(fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FileWithTransactions), args.Error(1)
}

// GetFileTransactions мок для GetFileTransactions
func (m *MockLedgerRepository) GetFileTransactions(fileID int64) ([]*models.TransactionRecord, error) {
	args := m.Called(fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TransactionRecord), args.Error(1)
}

// Close мок для Close
func (m *MockLedgerRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}
