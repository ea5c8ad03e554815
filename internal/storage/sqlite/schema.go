package sqlite

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// baseSchema - исходная схема без колонок, добавленных позже миграциями
const baseSchema = `
CREATE TABLE IF NOT EXISTS files (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	filename TEXT NOT NULL,
	upload_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	file_type TEXT,
	status TEXT NOT NULL DEFAULT 'success'
);

CREATE TABLE IF NOT EXISTS transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	file_id INTEGER NOT NULL REFERENCES files(id),
	supplier_tax_id TEXT,
	counterparty_name TEXT,
	amount_text TEXT,
	date TEXT,
	purpose TEXT,
	account_code TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_transactions_file_id ON transactions(file_id);
CREATE INDEX IF NOT EXISTS idx_files_upload_date ON files(upload_date);
`

// columnMigration добавляет необязательную колонку в существующую таблицу
type columnMigration struct {
	Table      string
	Column     string
	Definition string
}

// migrations применяются по порядку при каждом открытии БД.
// Только добавление колонок: существующие строки не теряются.
var migrations = []columnMigration{
	{Table: "transactions", Column: "is_anomaly", Definition: "INTEGER NOT NULL DEFAULT 0"},
	{Table: "transactions", Column: "anomaly_reasons_json", Definition: "TEXT"},
	{Table: "files", Column: "user_question", Definition: "TEXT"},
	{Table: "files", Column: "ai_answer", Definition: "TEXT"},
}

// initSchema создает базовые таблицы и применяет миграции
func (s *SQLiteStorage) initSchema() error {
	if _, err := s.DB.Exec(baseSchema); err != nil {
		return err
	}
	return s.migrate(migrations)
}

// migrate применяет миграции; уже существующая колонка пропускается
func (s *SQLiteStorage) migrate(steps []columnMigration) error {
	for _, step := range steps {
		exists, err := s.columnExists(step.Table, step.Column)
		if err != nil {
			return fmt.Errorf("failed to inspect %s: %w", step.Table, err)
		}
		if exists {
			continue
		}

		query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", step.Table, step.Column, step.Definition)
		if _, err := s.DB.Exec(query); err != nil {
			return fmt.Errorf("failed to add column %s.%s: %w", step.Table, step.Column, err)
		}
		log.Info().Str("table", step.Table).Str("column", step.Column).Msg("Schema migrated")
	}
	return nil
}

// columnExists проверяет наличие колонки через PRAGMA table_info
func (s *SQLiteStorage) columnExists(table, column string) (bool, error) {
	rows, err := s.DB.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var cid, notNull, pk int
		var name, dataType string
		var defaultValue interface{}
		if err := rows.Scan(&cid, &name, &dataType, &notNull, &defaultValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
