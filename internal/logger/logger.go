package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ContextKey тип ключей контекста для логгера
type ContextKey string

const (
	// LoggerKey ключ контекста, под которым хранится логгер запроса
	LoggerKey ContextKey = "logger"
)

// New создает структурированный логгер с указанным уровнем.
// pretty включает человекочитаемый вывод в консоль вместо JSON.
func New(level string, pretty bool) zerolog.Logger {
	var output io.Writer = os.Stdout
	if pretty {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}
	return NewWithWriter(output).Level(parseLevel(level))
}

// NewWithWriter создает логгер с произвольным writer
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Caller().Logger()
}

// Setup настраивает глобальный логгер пакета zerolog/log
func Setup(level string, pretty bool) zerolog.Logger {
	l := New(level, pretty)
	log.Logger = l
	zerolog.SetGlobalLevel(parseLevel(level))
	return l
}

// WithContext кладет логгер в контекст
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext достает логгер из контекста, иначе возвращает глобальный
func FromContext(ctx context.Context) zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(LoggerKey).(zerolog.Logger); ok {
			return logger
		}
	}
	return log.Logger
}

// WithFields добавляет в логгер структурированные поля
func WithFields(logger zerolog.Logger, fields map[string]interface{}) zerolog.Logger {
	ctx := logger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return ctx.Logger()
}

func parseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return parsed
}
