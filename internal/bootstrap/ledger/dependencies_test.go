package ledger

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ai-accountant/internal/config"
	"ai-accountant/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		DB:       config.DBConfig{DBPath: filepath.Join(t.TempDir(), "ledger.db")},
		Redis:    config.RedisConfig{Enabled: false},
		Kafka:    config.KafkaConfig{Enabled: false},
		Server:   config.ServerConfig{Port: 0},
		Liveness: config.LivenessConfig{SessionTimeout: time.Minute},
	}
}

func TestInitializeDependencies_StorageOnly(t *testing.T) {
	deps, err := InitializeDependencies(testConfig(t))
	require.NoError(t, err)

	assert.NotNil(t, deps.StorageConn)
	assert.NotNil(t, deps.StorageRepo)
	assert.NotNil(t, deps.Tracker)
	assert.NotNil(t, deps.LedgerService)
	assert.Nil(t, deps.KafkaProducer)
	assert.Nil(t, deps.RedisClient)

	assert.NoError(t, deps.Close())
}

func TestInitializeDependencies_UnavailableIntegrations(t *testing.T) {
	cfg := testConfig(t)
	cfg.Redis = config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: "1"}
	cfg.Kafka = config.KafkaConfig{Enabled: true, Brokers: []string{"127.0.0.1:1"}, LedgerTopic: "test"}

	deps, err := InitializeDependencies(cfg)
	require.NoError(t, err)
	defer deps.Close()

	assert.Nil(t, deps.RedisClient)
	assert.Nil(t, deps.KafkaProducer)
}

func TestInitializeDependencies_BadDatabasePath(t *testing.T) {
	// Родительский "каталог" на самом деле файл
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	cfg := testConfig(t)
	cfg.DB.DBPath = filepath.Join(blocker, "nested", "ledger.db")

	deps, err := InitializeDependencies(cfg)
	assert.Error(t, err)
	assert.Nil(t, deps)
}

func TestNewServer_ProcessesBatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)

	deps, err := InitializeDependencies(cfg)
	require.NoError(t, err)
	defer deps.Close()

	srv := NewServer(cfg, deps)
	assert.Equal(t, ":0", srv.Addr)

	body := `{
		"filename": "march.pdf",
		"records": [
			{"supplier_tax_id": "1", "counterparty_name": "A", "amount": "100", "purpose": "invoice"},
			{"supplier_tax_id": "2", "counterparty_name": "B", "amount": "105", "purpose": "act"},
			{"supplier_tax_id": "3", "counterparty_name": "C", "amount": "98", "purpose": "salary"},
			{"supplier_tax_id": "4", "counterparty_name": "D", "amount": "102", "purpose": "tax"},
			{"supplier_tax_id": "5", "counterparty_name": "E", "amount": "50000", "purpose": "other"},
			{"error": "failed to parse JSON", "raw_output": "garbage"}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/files", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var result models.BatchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, models.FileStatusPartial, result.Status)
	assert.Len(t, result.Transactions, 5)
	assert.Len(t, result.Diagnostics, 1)
	assert.Equal(t, 1, result.AnomalyCount)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/liveness", nil)
	w = httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)

	var snapshot models.LivenessSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, 2, snapshot.OnlineSessions) // два запроса без cookie - две сессии
	assert.Equal(t, 0, snapshot.Processing)
}
