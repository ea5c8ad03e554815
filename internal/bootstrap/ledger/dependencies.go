package ledger

import (
	"errors"

	"ai-accountant/internal/anomaly"
	"ai-accountant/internal/config"
	"ai-accountant/internal/kafka"
	"ai-accountant/internal/liveness"
	"ai-accountant/internal/redis"
	"ai-accountant/internal/services"
	"ai-accountant/internal/storage"
	"ai-accountant/internal/storage/sqlite"

	"github.com/rs/zerolog/log"
)

// Dependencies содержит все зависимости ledger service
type Dependencies struct {
	StorageConn   *sqlite.SQLiteStorage
	StorageRepo   storage.LedgerRepository
	KafkaProducer kafka.Producer // nil, если Kafka выключена или недоступна
	RedisClient   *redis.Client  // nil, если Redis выключен или недоступен
	Tracker       *liveness.Tracker
	LedgerService services.LedgerService
}

// InitializeDependencies инициализирует все зависимости ledger service.
// Без SQLite сервис не стартует; Redis и Kafka опциональны.
func InitializeDependencies(cfg *config.Config) (*Dependencies, error) {
	// Инициализация SQLite
	conn, err := sqlite.NewConnection(cfg)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{
		StorageConn: conn,
		StorageRepo: sqlite.NewRepository(conn),
		Tracker:     liveness.NewTracker(cfg.Liveness.SessionTimeout),
	}

	// Инициализация Redis (опционально)
	var redisClient redis.ClientInterface
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("Redis is not available, summaries will be built from storage")
		} else {
			log.Info().Msg("Redis client connected successfully")
			deps.RedisClient = client
			redisClient = client
		}
	}

	// Инициализация Kafka Producer (опционально)
	if cfg.Kafka.Enabled {
		log.Info().Msg("Connecting to Kafka...")
		producer, err := kafka.NewProducer(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("Kafka is not available, ledger events will not be published")
		} else {
			deps.KafkaProducer = producer
		}
	}

	deps.LedgerService = services.NewLedgerServiceWithIntegrations(
		deps.StorageRepo,
		anomaly.NewDetector(),
		deps.Tracker,
		deps.KafkaProducer,
		redisClient,
	)

	return deps, nil
}

// Close закрывает все соединения
func (d *Dependencies) Close() error {
	var errs []error
	if d.KafkaProducer != nil {
		errs = append(errs, d.KafkaProducer.Close())
	}
	if d.RedisClient != nil {
		errs = append(errs, d.RedisClient.Close())
	}
	if d.StorageConn != nil {
		errs = append(errs, d.StorageConn.Close())
	}
	return errors.Join(errs...)
}
