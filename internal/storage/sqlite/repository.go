package sqlite

import (
	"ai-accountant/internal/models"
	"ai-accountant/internal/storage"
)

// Repository реализует интерфейс LedgerRepository для SQLite
type Repository struct {
	storage *SQLiteStorage
}

// NewRepository создает новый репозиторий SQLite
func NewRepository(storage *SQLiteStorage) storage.LedgerRepository {
	return &Repository{storage: storage}
}

// SaveFile сохраняет файл и его транзакции
func (r *Repository) SaveFile(file *models.UploadedFile, transactions []*models.TransactionRecord) (int64, error) {
	return r.storage.SaveFile(file, transactions)
}

// ListFiles возвращает список файлов
func (r *Repository) ListFiles() ([]*models.FileSummary, error) {
	return r.storage.ListFiles()
}

// GetFile возвращает файл с транзакциями
func (r *Repository) GetFile(fileID int64) (*models.FileWithTransactions, error) {
	return r.storage.GetFile(fileID)
}

// GetFileTransactions возвращает транзакции файла
func (r *Repository) GetFileTransactions(fileID int64) ([]*models.TransactionRecord, error) {
	return r.storage.GetFileTransactions(fileID)
}

// Close закрывает соединение с БД
func (r *Repository) Close() error {
	return r.storage.Close()
}
