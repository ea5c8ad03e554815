package kafka

import (
	"ai-accountant/internal/models"
)

// Producer определяет интерфейс для отправки событий журнала в Kafka
type Producer interface {
	SendLedgerEvent(event *models.LedgerEvent) error

	Close() error
}
