package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DB       DBConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Server   ServerConfig
	Liveness LivenessConfig
	Logger   LoggerConfig
}

type DBConfig struct {
	DBPath string // Путь к файлу SQLite
}

type RedisConfig struct {
	Enabled    bool
	Host       string
	Port       string
	Password   string
	SummaryTTL time.Duration // Время жизни кэшированной сводки по файлу
}

type KafkaConfig struct {
	Enabled     bool
	Brokers     []string
	LedgerTopic string
}

type ServerConfig struct {
	Port int
}

type LivenessConfig struct {
	SessionTimeout time.Duration // Окно неактивности, после которого сессия считается offline
}

type LoggerConfig struct {
	Level  string
	Pretty bool
}

// Load собирает конфигурацию из .env и переменных окружения.
// Отсутствие .env не является ошибкой.
func Load() *Config {
	// Загружаем .env файл, если он существует
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	return &Config{
		DB: DBConfig{
			DBPath: getEnv("DB_PATH", "./data/accounting.db"),
		},
		Redis: RedisConfig{
			Enabled:    getEnvAsBool("REDIS_ENABLED", true),
			Host:       getEnv("REDIS_HOST", "localhost"),
			Port:       getEnv("REDIS_PORT", "6379"),
			Password:   getEnv("REDIS_PASSWORD", ""),
			SummaryTTL: getEnvAsDuration("REDIS_SUMMARY_TTL", time.Hour),
		},
		Kafka: KafkaConfig{
			Enabled:     getEnvAsBool("KAFKA_ENABLED", false),
			Brokers:     splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			LedgerTopic: getEnv("KAFKA_LEDGER_TOPIC", "accounting.files.processed"),
		},
		Server: ServerConfig{
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Liveness: LivenessConfig{
			SessionTimeout: getEnvAsDuration("SESSION_TIMEOUT", 60*time.Second),
		},
		Logger: LoggerConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Pretty: getEnvAsBool("LOG_PRETTY", true),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

// splitList разбирает список брокеров вида "host1:9092,host2:9092"
func splitList(value string) []string {
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
