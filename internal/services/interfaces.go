package services

import (
	"errors"

	"ai-accountant/internal/models"
)

// ErrEmptyFilename возвращается, если в запросе не указано имя файла
var ErrEmptyFilename = errors.New("filename is required")

// LedgerService определяет интерфейс обработки и чтения журнала операций
type LedgerService interface {
	// ProcessBatch нормализует, классифицирует, размечает аномалии и сохраняет пакет записей одного файла
	ProcessBatch(req *models.BatchRequest) (*models.BatchResult, error)

	// ListFiles возвращает все загруженные файлы, новые первыми
	ListFiles() ([]*models.FileSummary, error)

	// GetFile возвращает файл с транзакциями или nil, если его нет
	GetFile(fileID int64) (*models.FileWithTransactions, error)

	// GetFileSummary возвращает сводку аномалий по файлу или nil, если его нет
	GetFileSummary(fileID int64) (*models.AnomalySummary, error)

	// GetAnomalyStats возвращает накопленную статистику причин аномалий
	GetAnomalyStats() (*models.AnomalyStats, error)
}
