package kafka

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ai-accountant/internal/models"

	"github.com/IBM/sarama"
	saramamocks "github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() *models.LedgerEvent {
	return &models.LedgerEvent{
		EventID:   "evt-1",
		EventType: "file_processed",
		Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Data: models.LedgerEventData{
			FileID:           17,
			Filename:         "invoice.pdf",
			FileType:         "pdf",
			TransactionCount: 5,
			AnomalyCount:     1,
			ReasonCounts:     map[string]int{"unusual amount": 1},
		},
	}
}

func TestNewSaramaConfig(t *testing.T) {
	config := newSaramaConfig()

	assert.True(t, config.Producer.Return.Successes)
	assert.Equal(t, sarama.WaitForAll, config.Producer.RequiredAcks)
	assert.Equal(t, 5, config.Producer.Retry.Max)
}

func TestProducer_SendLedgerEvent(t *testing.T) {
	syncProducer := saramamocks.NewSyncProducer(t, newSaramaConfig())
	syncProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "accounting.files.processed" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "17" {
			return errors.New("unexpected key " + string(key))
		}
		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var decoded models.LedgerEvent
		if err := json.Unmarshal(value, &decoded); err != nil {
			return err
		}
		if decoded.Data.Filename != "invoice.pdf" || decoded.Data.ReasonCounts["unusual amount"] != 1 {
			return errors.New("unexpected payload")
		}
		return nil
	})

	producer := newProducer(syncProducer, "accounting.files.processed")
	require.NoError(t, producer.SendLedgerEvent(sampleEvent()))
	require.NoError(t, producer.Close())
}

func TestProducer_SendLedgerEvent_BrokerError(t *testing.T) {
	syncProducer := saramamocks.NewSyncProducer(t, newSaramaConfig())
	syncProducer.ExpectSendMessageAndFail(sarama.ErrNotLeaderForPartition)

	producer := newProducer(syncProducer, "accounting.files.processed")
	err := producer.SendLedgerEvent(sampleEvent())

	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrNotLeaderForPartition)
	require.NoError(t, producer.Close())
}
