package kafka

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"ai-accountant/internal/config"
	"ai-accountant/internal/models"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog/log"
)

type ProducerImpl struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducer создает синхронного продюсера для топика обработанных файлов
func NewProducer(cfg *config.Config) (Producer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, newSaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("Kafka producer created successfully")
	return newProducer(producer, cfg.Kafka.LedgerTopic), nil
}

func newProducer(producer sarama.SyncProducer, topic string) *ProducerImpl {
	return &ProducerImpl{
		producer: producer,
		topic:    topic,
	}
}

func newSaramaConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	return config
}

// SendLedgerEvent публикует событие; ключ сообщения - ID файла,
// поэтому события одного файла попадают в одну партицию
func (p *ProducerImpl) SendLedgerEvent(event *models.LedgerEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(strconv.FormatInt(event.Data.FileID, 10)),
		Value:     sarama.ByteEncoder(data),
		Timestamp: time.Now(),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	log.Debug().
		Str("topic", p.topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Ledger event sent")
	return nil
}

func (p *ProducerImpl) Close() error {
	return p.producer.Close()
}
