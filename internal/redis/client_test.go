package redis

import (
	"context"
	"testing"
	"time"

	"ai-accountant/internal/config"
	"ai-accountant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func testConfig() *config.Config {
	return &config.Config{
		Redis: config.RedisConfig{
			Host:       "127.0.0.1", // Используем IPv4 вместо localhost
			Port:       "6379",
			Password:   "",
			SummaryTTL: time.Minute,
		},
	}
}

func setupTestRedis(t *testing.T) *Client {
	client, err := NewClient(testConfig())
	if err != nil {
		t.Skipf("Skipping test: Redis not available: %v", err)
	}

	// Очищаем тестовые данные перед тестом
	ctx := context.Background()
	client.rdb.FlushDB(ctx)

	t.Cleanup(func() {
		client.rdb.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func sampleSummary() *models.AnomalySummary {
	return &models.AnomalySummary{
		FileID:           42,
		TransactionCount: 5,
		AnomalyCount:     2,
		TotalAmount:      50405,
		ReasonCounts:     map[string]int{"unusual amount": 1, "missing tax ID": 1},
		AccountTotals:    map[string]float64{"60.01": 50000, "91.02": 405},
	}
}

func TestSummaryMsgpackEncoding(t *testing.T) {
	summary := sampleSummary()

	data, err := msgpack.Marshal(summary)
	require.NoError(t, err)

	var decoded models.AnomalySummary
	require.NoError(t, msgpack.Unmarshal(data, &decoded))
	assert.Equal(t, *summary, decoded)
}

func TestSummaryKey(t *testing.T) {
	assert.Equal(t, "file:7:summary", summaryKey(7))
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(testConfig())
	if err != nil {
		t.Skipf("Skipping test: Redis not available: %v", err)
		return
	}
	defer client.Close()

	assert.NotNil(t, client.rdb)
	assert.Equal(t, time.Minute, client.summaryTTL)
}

func TestNewClient_Unreachable(t *testing.T) {
	cfg := testConfig()
	cfg.Redis.Port = "1"

	client, err := NewClient(cfg)
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestClient_SaveAndGetFileSummary(t *testing.T) {
	client := setupTestRedis(t)
	summary := sampleSummary()

	require.NoError(t, client.SaveFileSummary(summary))

	cached, err := client.GetFileSummary(summary.FileID)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, summary, cached)

	ttl, err := client.rdb.TTL(context.Background(), summaryKey(summary.FileID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestClient_GetFileSummary_Miss(t *testing.T) {
	client := setupTestRedis(t)

	cached, err := client.GetFileSummary(404)
	assert.NoError(t, err)
	assert.Nil(t, cached)
}

func TestClient_ReasonStats(t *testing.T) {
	client := setupTestRedis(t)

	require.NoError(t, client.IncrementReasonStats(map[string]int{"unusual amount": 1, "missing tax ID": 2}))
	require.NoError(t, client.IncrementReasonStats(map[string]int{"missing tax ID": 1, "missing counterparty": 0}))

	stats, err := client.GetReasonStats()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"unusual amount": 1, "missing tax ID": 3}, stats)

	files, err := client.GetProcessedFileCount()
	require.NoError(t, err)
	assert.Equal(t, int64(2), files)
}

func TestClient_EmptyStats(t *testing.T) {
	client := setupTestRedis(t)

	stats, err := client.GetReasonStats()
	require.NoError(t, err)
	assert.Empty(t, stats)

	files, err := client.GetProcessedFileCount()
	assert.ErrorIs(t, err, ErrStatsNotFound)
	assert.Zero(t, files)
}
