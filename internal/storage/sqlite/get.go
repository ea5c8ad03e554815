package sqlite

import (
	"database/sql"
	"encoding/json"
	"time"

	"ai-accountant/internal/accounting"
	"ai-accountant/internal/models"
	"ai-accountant/internal/storage"
)

// ListFiles возвращает все файлы с количеством транзакций, новые первыми
func (s *SQLiteStorage) ListFiles() ([]*models.FileSummary, error) {
	query := `
		SELECT f.id, f.filename, f.upload_date, f.file_type, f.status,
		       f.user_question, f.ai_answer, COUNT(t.id) AS transaction_count
		FROM files f
		LEFT JOIN transactions t ON t.file_id = f.id
		GROUP BY f.id
		ORDER BY f.upload_date DESC, f.id DESC
	`

	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, storage.Wrap("list files", err)
	}
	defer rows.Close()

	files := []*models.FileSummary{}
	for rows.Next() {
		var summary models.FileSummary
		if err := scanFile(rows, &summary.UploadedFile, &summary.TransactionCount); err != nil {
			return nil, storage.Wrap("list files", err)
		}
		files = append(files, &summary)
	}

	if err := rows.Err(); err != nil {
		return nil, storage.Wrap("list files", err)
	}
	return files, nil
}

// GetFile получает файл вместе со всеми его транзакциями
func (s *SQLiteStorage) GetFile(fileID int64) (*models.FileWithTransactions, error) {
	query := `
		SELECT id, filename, upload_date, file_type, status, user_question, ai_answer
		FROM files
		WHERE id = ?
	`

	var file models.FileWithTransactions
	err := scanFile(s.DB.QueryRow(query, fileID), &file.UploadedFile)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storage.Wrap("get file", err)
	}

	transactions, err := s.GetFileTransactions(fileID)
	if err != nil {
		return nil, err
	}
	file.Transactions = transactions

	return &file, nil
}

// GetFileTransactions получает транзакции файла в порядке вставки
func (s *SQLiteStorage) GetFileTransactions(fileID int64) ([]*models.TransactionRecord, error) {
	query := `
		SELECT id, file_id, supplier_tax_id, counterparty_name, amount_text, date,
		       purpose, account_code, is_anomaly, anomaly_reasons_json
		FROM transactions
		WHERE file_id = ?
		ORDER BY id
	`

	rows, err := s.DB.Query(query, fileID)
	if err != nil {
		return nil, storage.Wrap("get transactions", err)
	}
	defer rows.Close()

	transactions := []*models.TransactionRecord{}
	for rows.Next() {
		var (
			tx                                         models.TransactionRecord
			taxID, counterparty, amount, date, purpose sql.NullString
			accountCode, reasons                       sql.NullString
		)
		err := rows.Scan(
			&tx.ID, &tx.FileID, &taxID, &counterparty, &amount, &date,
			&purpose, &accountCode, &tx.IsAnomaly, &reasons,
		)
		if err != nil {
			return nil, storage.Wrap("get transactions", err)
		}

		tx.SupplierTaxID = taxID.String
		tx.CounterpartyName = counterparty.String
		tx.RawAmount = amount.String
		// Нормализованная сумма не хранится, она однозначно выводится из текста
		tx.NormalizedAmount = accounting.NormalizeAmount(tx.RawAmount)
		tx.Date = date.String
		tx.Purpose = purpose.String
		tx.AccountCode = accountCode.String
		tx.AnomalyReasons = decodeReasons(reasons)
		transactions = append(transactions, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, storage.Wrap("get transactions", err)
	}
	return transactions, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanFile читает колонки files; extra - дополнительные колонки после ai_answer
func scanFile(row rowScanner, file *models.UploadedFile, extra ...interface{}) error {
	var (
		uploadDate                 time.Time
		fileType, question, answer sql.NullString
	)

	dest := []interface{}{&file.ID, &file.Filename, &uploadDate, &fileType, &file.Status, &question, &answer}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}

	file.UploadDate = uploadDate
	file.FileType = fileType.String
	file.UserQuestion = question.String
	file.AIAnswer = answer.String
	return nil
}

// decodeReasons восстанавливает причины аномалий; NULL и поврежденный JSON дают пустой срез
func decodeReasons(value sql.NullString) []string {
	if !value.Valid || value.String == "" {
		return []string{}
	}

	var reasons []string
	if err := json.Unmarshal([]byte(value.String), &reasons); err != nil || reasons == nil {
		return []string{}
	}
	return reasons
}
