package mocks

import (
	"ai-accountant/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockProducer является моком для kafka.Producer интерфейса
type MockProducer struct {
	mock.Mock
}

// SendLedgerEvent мок для SendLedgerEvent
func (m *MockProducer) SendLedgerEvent(event *models.LedgerEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

// Close мок для Close
func (m *MockProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}
