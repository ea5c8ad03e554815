package redis

import (
	"ai-accountant/internal/models"
)

// ClientInterface определяет интерфейс для работы с Redis
// Это позволяет легко создавать моки для тестирования
// Реализуется типом Client
type ClientInterface interface {
	// SaveFileSummary кэширует сводку аномалий по файлу
	SaveFileSummary(summary *models.AnomalySummary) error

	// GetFileSummary получает сводку из кэша (nil, если ее нет)
	GetFileSummary(fileID int64) (*models.AnomalySummary, error)

	// IncrementReasonStats увеличивает счетчики причин аномалий
	IncrementReasonStats(reasonCounts map[string]int) error

	// GetReasonStats получает накопленные счетчики причин аномалий
	GetReasonStats() (map[string]int64, error)

	// GetProcessedFileCount получает число учтенных файлов (ErrStatsNotFound, если счетчика нет)
	GetProcessedFileCount() (int64, error)

	// Close закрывает соединение с Redis
	Close() error
}

// Убеждаемся, что Client реализует ClientInterface
var _ ClientInterface = (*Client)(nil)
