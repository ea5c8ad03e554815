package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"ai-accountant/internal/models"
	"ai-accountant/internal/storage"
)

const (
	saveMaxRetries = 3
	saveRetryDelay = 50 * time.Millisecond
)

// SaveFile сохраняет файл и его транзакции одной SQL-транзакцией.
// Записи с маркером ошибки пропускаются. При любой ошибке не сохраняется ничего.
// После успешной записи проставляет ID и дату загрузки в file и ID/FileID в сохраненных транзакциях.
func (s *SQLiteStorage) SaveFile(file *models.UploadedFile, transactions []*models.TransactionRecord) (int64, error) {
	var (
		fileID     int64
		uploadDate time.Time
		rowIDs     []int64
	)

	err := retryOperation(func() error {
		var err error
		uploadDate = time.Now().UTC()
		fileID, rowIDs, err = s.saveFileTx(file, uploadDate, transactions)
		return err
	}, saveMaxRetries, saveRetryDelay)
	if err != nil {
		return 0, storage.Wrap("save file", err)
	}

	file.ID = fileID
	file.UploadDate = uploadDate
	i := 0
	for _, tx := range transactions {
		if tx.HasError() {
			continue
		}
		tx.FileID = fileID
		tx.ID = rowIDs[i]
		i++
	}

	return fileID, nil
}

func (s *SQLiteStorage) saveFileTx(file *models.UploadedFile, uploadDate time.Time, transactions []*models.TransactionRecord) (fileID int64, rowIDs []int64, err error) {
	dbTx, err := s.DB.Begin()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	status := file.Status
	if status == "" {
		status = models.FileStatusSuccess
	}

	result, err := dbTx.Exec(`
		INSERT INTO files (filename, upload_date, file_type, status, user_question, ai_answer)
		VALUES (?, ?, ?, ?, ?, ?)
	`, file.Filename, uploadDate, nullString(file.FileType), status,
		nullString(file.UserQuestion), nullString(file.AIAnswer))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to insert file: %w", err)
	}

	fileID, err = result.LastInsertId()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get file id: %w", err)
	}

	stmt, err := dbTx.Prepare(`
		INSERT INTO transactions (
			file_id, supplier_tax_id, counterparty_name, amount_text, date,
			purpose, account_code, is_anomaly, anomaly_reasons_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to prepare transaction insert: %w", err)
	}
	defer stmt.Close()

	for _, tx := range transactions {
		if tx.HasError() {
			continue
		}

		reasons, err := encodeReasons(tx.AnomalyReasons)
		if err != nil {
			return 0, nil, err
		}

		result, err := stmt.Exec(
			fileID, nullString(tx.SupplierTaxID), nullString(tx.CounterpartyName),
			nullString(tx.RawAmount), nullString(tx.Date), nullString(tx.Purpose),
			tx.AccountCode, tx.IsAnomaly, reasons,
		)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to insert transaction: %w", err)
		}

		rowID, err := result.LastInsertId()
		if err != nil {
			return 0, nil, fmt.Errorf("failed to get transaction id: %w", err)
		}
		rowIDs = append(rowIDs, rowID)
	}

	if err = dbTx.Commit(); err != nil {
		return 0, nil, fmt.Errorf("failed to commit: %w", err)
	}

	return fileID, rowIDs, nil
}

// encodeReasons сериализует причины аномалий в JSON-массив
func encodeReasons(reasons []string) (string, error) {
	if reasons == nil {
		reasons = []string{}
	}
	data, err := json.Marshal(reasons)
	if err != nil {
		return "", fmt.Errorf("failed to marshal anomaly reasons: %w", err)
	}
	return string(data), nil
}

// nullString сохраняет пустую строку как NULL
func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
