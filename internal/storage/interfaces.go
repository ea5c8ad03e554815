package storage

import (
	"ai-accountant/internal/models"
)

// LedgerRepository определяет интерфейс append-only хранилища файлов и транзакций
type LedgerRepository interface {
	// SaveFile атомарно сохраняет файл и все его транзакции без маркера ошибки
	SaveFile(file *models.UploadedFile, transactions []*models.TransactionRecord) (int64, error)

	// ListFiles возвращает все файлы, начиная с последнего загруженного
	ListFiles() ([]*models.FileSummary, error)

	// GetFile возвращает файл вместе с транзакциями или nil, если файла нет
	GetFile(fileID int64) (*models.FileWithTransactions, error)

	// GetFileTransactions возвращает транзакции файла в порядке вставки
	GetFileTransactions(fileID int64) ([]*models.TransactionRecord, error)

	// Close закрывает соединение с хранилищем
	Close() error
}
