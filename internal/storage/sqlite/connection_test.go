package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"ai-accountant/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	cfg := &config.Config{
		DB: config.DBConfig{
			DBPath: filepath.Join(t.TempDir(), "ledger.db"),
		},
	}

	storage, err := NewConnection(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })

	return storage
}

func tableColumns(t *testing.T, db *sql.DB, table string) map[string]bool {
	t.Helper()

	rows, err := db.Query("PRAGMA table_info(" + table + ")")
	require.NoError(t, err)
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var cid, notNull, pk int
		var name, dataType string
		var defaultValue interface{}
		require.NoError(t, rows.Scan(&cid, &name, &dataType, &notNull, &defaultValue, &pk))
		columns[name] = true
	}
	require.NoError(t, rows.Err())
	return columns
}

func TestNewConnection(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "ledger.db")
	cfg := &config.Config{DB: config.DBConfig{DBPath: dbPath}}

	storage, err := NewConnection(cfg)
	require.NoError(t, err)
	require.NotNil(t, storage)
	defer storage.Close()

	// Проверяем, что БД и директория созданы
	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestNewConnection_InMemory(t *testing.T) {
	cfg := &config.Config{DB: config.DBConfig{DBPath: ":memory:"}}

	storage, err := NewConnection(cfg)
	require.NoError(t, err)
	defer storage.Close()

	var result int
	require.NoError(t, storage.DB.QueryRow("SELECT 1").Scan(&result))
	assert.Equal(t, 1, result)
}

func TestNewConnection_ConnectionPool(t *testing.T) {
	storage := setupTestStorage(t)

	stats := storage.DB.Stats()
	assert.Equal(t, 1, stats.MaxOpenConnections)
}

func TestSQLiteStorage_Close(t *testing.T) {
	cfg := &config.Config{DB: config.DBConfig{DBPath: filepath.Join(t.TempDir(), "close.db")}}

	storage, err := NewConnection(cfg)
	require.NoError(t, err)

	require.NoError(t, storage.Close())
	assert.Error(t, storage.DB.Ping())
}

func TestInitSchema_TableStructure(t *testing.T) {
	storage := setupTestStorage(t)

	files := tableColumns(t, storage.DB, "files")
	for _, col := range []string{"id", "filename", "upload_date", "file_type", "status", "user_question", "ai_answer"} {
		assert.True(t, files[col], "Column files.%s should exist", col)
	}

	transactions := tableColumns(t, storage.DB, "transactions")
	for _, col := range []string{
		"id", "file_id", "supplier_tax_id", "counterparty_name", "amount_text", "date",
		"purpose", "account_code", "is_anomaly", "anomaly_reasons_json",
	} {
		assert.True(t, transactions[col], "Column transactions.%s should exist", col)
	}
}

func TestInitSchema_MigratesLegacyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "legacy.db")

	// Схема до появления колонок аномалий и вопросов/ответов
	legacy, err := sql.Open("sqlite", "file:"+dbPath)
	require.NoError(t, err)
	_, err = legacy.Exec(`
		CREATE TABLE files (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT NOT NULL,
			upload_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			file_type TEXT,
			status TEXT NOT NULL DEFAULT 'success'
		);
		CREATE TABLE transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			file_id INTEGER NOT NULL,
			supplier_tax_id TEXT,
			counterparty_name TEXT,
			amount_text TEXT,
			date TEXT,
			purpose TEXT,
			account_code TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		INSERT INTO files (filename, file_type) VALUES ('old.pdf', 'pdf');
		INSERT INTO transactions (file_id, supplier_tax_id, counterparty_name, amount_text, purpose, account_code)
		VALUES (1, '7701234567', 'LLC Vector', '1000', 'invoice', '60.01');
	`)
	require.NoError(t, err)
	require.NoError(t, legacy.Close())

	cfg := &config.Config{DB: config.DBConfig{DBPath: dbPath}}
	storage, err := NewConnection(cfg)
	require.NoError(t, err)

	file, err := storage.GetFile(1)
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.Equal(t, "old.pdf", file.Filename)
	assert.Empty(t, file.UserQuestion)
	require.Len(t, file.Transactions, 1)
	assert.Equal(t, "60.01", file.Transactions[0].AccountCode)
	assert.False(t, file.Transactions[0].IsAnomaly)
	assert.Equal(t, []string{}, file.Transactions[0].AnomalyReasons)
	require.NoError(t, storage.Close())

	// Повторное открытие не падает на уже добавленных колонках
	storage, err = NewConnection(cfg)
	require.NoError(t, err)
	defer storage.Close()

	files, err := storage.ListFiles()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, 1, files[0].TransactionCount)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	storage := setupTestStorage(t)

	require.NoError(t, storage.migrate(migrations))
	require.NoError(t, storage.migrate(migrations))

	exists, err := storage.columnExists("transactions", "anomaly_reasons_json")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestColumnExists_UnknownColumn(t *testing.T) {
	storage := setupTestStorage(t)

	exists, err := storage.columnExists("files", "no_such_column")
	require.NoError(t, err)
	assert.False(t, exists)
}
