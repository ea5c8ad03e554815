package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"ai-accountant/internal/models"

	redisv9 "github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	reasonStatsKey   = "anomaly_stats:reasons"
	processedFileKey = "anomaly_stats:files"
)

// ErrStatsNotFound возвращается, если счетчики статистики еще не заведены или были сброшены
var ErrStatsNotFound = errors.New("anomaly stats not found")

func summaryKey(fileID int64) string {
	return fmt.Sprintf("file:%d:summary", fileID)
}

// SaveFileSummary кэширует сводку по файлу в msgpack с TTL из конфигурации
func (c *Client) SaveFileSummary(summary *models.AnomalySummary) error {
	ctx := context.Background()

	data, err := msgpack.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	return c.rdb.Set(ctx, summaryKey(summary.FileID), data, c.summaryTTL).Err()
}

// GetFileSummary возвращает закэшированную сводку или nil, если ее нет
func (c *Client) GetFileSummary(fileID int64) (*models.AnomalySummary, error) {
	ctx := context.Background()

	data, err := c.rdb.Get(ctx, summaryKey(fileID)).Bytes()
	if err == redisv9.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	var summary models.AnomalySummary
	if err := msgpack.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}

	return &summary, nil
}

// IncrementReasonStats увеличивает счетчики причин аномалий и число обработанных файлов
func (c *Client) IncrementReasonStats(reasonCounts map[string]int) error {
	ctx := context.Background()

	pipe := c.rdb.TxPipeline()
	pipe.Incr(ctx, processedFileKey)
	for reason, count := range reasonCounts {
		if count > 0 {
			pipe.HIncrBy(ctx, reasonStatsKey, reason, int64(count))
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

// GetReasonStats возвращает накопленные счетчики причин аномалий
func (c *Client) GetReasonStats() (map[string]int64, error) {
	ctx := context.Background()

	raw, err := c.rdb.HGetAll(ctx, reasonStatsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get reason stats: %w", err)
	}

	stats := make(map[string]int64, len(raw))
	for reason, value := range raw {
		count, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			continue
		}
		stats[reason] = count
	}
	return stats, nil
}

// GetProcessedFileCount возвращает число файлов, учтенных в статистике.
// Если счетчика нет, возвращает ErrStatsNotFound.
func (c *Client) GetProcessedFileCount() (int64, error) {
	ctx := context.Background()

	count, err := c.rdb.Get(ctx, processedFileKey).Int64()
	if err == redisv9.Nil {
		return 0, ErrStatsNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get processed file count: %w", err)
	}
	return count, nil
}
