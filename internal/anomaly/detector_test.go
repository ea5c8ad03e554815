package anomaly

import (
	"testing"

	"ai-accountant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(amount float64) *models.TransactionRecord {
	return &models.TransactionRecord{
		SupplierTaxID:    "7701234567",
		CounterpartyName: "LLC Vector",
		NormalizedAmount: amount,
		Purpose:          "Payment under invoice",
		AccountCode:      "60.01",
	}
}

func batchOf(amounts ...float64) []*models.TransactionRecord {
	batch := make([]*models.TransactionRecord, 0, len(amounts))
	for _, a := range amounts {
		batch = append(batch, newRecord(a))
	}
	return batch
}

func TestNewDetector(t *testing.T) {
	detector := NewDetector()

	assert.NotNil(t, detector)
	assert.Equal(t, Contamination, detector.contamination)
	assert.Equal(t, int64(RandomSeed), detector.seed)
}

func TestDetect_SmallBatchIsNeverAnomalous(t *testing.T) {
	detector := NewDetector()

	for size := 0; size < MinBatchSize; size++ {
		batch := make([]*models.TransactionRecord, 0, size)
		for i := 0; i < size; i++ {
			// Даже запись без полей не помечается
			batch = append(batch, &models.TransactionRecord{AnomalyReasons: []string{"stale"}, IsAnomaly: true})
		}

		result := detector.Detect(batch)

		require.Len(t, result, size)
		for _, tx := range result {
			assert.False(t, tx.IsAnomaly)
			assert.Empty(t, tx.AnomalyReasons)
			assert.NotNil(t, tx.AnomalyReasons)
		}
	}
}

func TestDetect_FlagsUnusualAmount(t *testing.T) {
	detector := NewDetector()
	batch := batchOf(100, 105, 98, 102, 50000)

	result := detector.Detect(batch)

	require.Len(t, result, 5)
	for i, tx := range result[:4] {
		assert.False(t, tx.IsAnomaly, "record %d should not be anomalous", i)
		assert.Empty(t, tx.AnomalyReasons)
	}
	assert.True(t, result[4].IsAnomaly)
	assert.Equal(t, []string{ReasonUnusualAmount}, result[4].AnomalyReasons)
}

func TestDetect_PreservesOrderAndIdentity(t *testing.T) {
	detector := NewDetector()
	batch := batchOf(10, 20, 30, 40)

	result := detector.Detect(batch)

	for i := range batch {
		assert.Same(t, batch[i], result[i])
	}
}

func TestDetect_StructuralRulesInOrder(t *testing.T) {
	detector := NewDetector()
	batch := batchOf(100, 101, 99)
	batch = append(batch, &models.TransactionRecord{
		SupplierTaxID:    "not specified",
		CounterpartyName: "",
		NormalizedAmount: 0,
	})

	result := detector.Detect(batch)

	assert.True(t, result[3].IsAnomaly)
	assert.Equal(t, []string{ReasonMissingTaxID, ReasonMissingCounterparty, ReasonZeroAmount}, result[3].AnomalyReasons)
}

func TestDetect_ZeroSentinelIsNeverUnusual(t *testing.T) {
	detector := NewDetector()
	batch := batchOf(0, 100, 101, 102, 103)

	result := detector.Detect(batch)

	assert.Equal(t, []string{ReasonZeroAmount}, result[0].AnomalyReasons)
	for _, tx := range result[1:] {
		assert.NotContains(t, tx.AnomalyReasons, ReasonUnusualAmount)
	}
}

func TestDetect_SkipsModelWithFewPositiveAmounts(t *testing.T) {
	detector := NewDetector()
	batch := batchOf(0, 0, 100, 50000)

	result := detector.Detect(batch)

	assert.Equal(t, []string{ReasonZeroAmount}, result[0].AnomalyReasons)
	assert.Equal(t, []string{ReasonZeroAmount}, result[1].AnomalyReasons)
	assert.False(t, result[2].IsAnomaly)
	assert.False(t, result[3].IsAnomaly)
	assert.Empty(t, result[3].AnomalyReasons)
}

func TestDetect_Idempotent(t *testing.T) {
	detector := NewDetector()
	batch := batchOf(100, 105, 98, 102, 50000, 0, 97)
	batch[1].CounterpartyName = "не указано"

	detector.Detect(batch)
	first := make([][]string, len(batch))
	flags := make([]bool, len(batch))
	for i, tx := range batch {
		first[i] = append([]string(nil), tx.AnomalyReasons...)
		flags[i] = tx.IsAnomaly
	}

	detector.Detect(batch)

	for i, tx := range batch {
		assert.Equal(t, flags[i], tx.IsAnomaly)
		assert.Equal(t, first[i], append([]string(nil), tx.AnomalyReasons...))
	}
}

func TestDetect_ReasonAccumulation(t *testing.T) {
	detector := NewDetector()
	batch := batchOf(100, 105, 98, 102, 50000)
	batch[4].SupplierTaxID = ""

	detector.Detect(batch)

	assert.Equal(t, []string{ReasonUnusualAmount, ReasonMissingTaxID}, batch[4].AnomalyReasons)
}

func TestSummarize(t *testing.T) {
	detector := NewDetector()
	batch := batchOf(100, 105, 98, 102, 50000)
	batch[0].SupplierTaxID = ""
	batch[1].AccountCode = "70"
	detector.Detect(batch)

	summary := Summarize(7, batch)

	assert.Equal(t, int64(7), summary.FileID)
	assert.Equal(t, 5, summary.TransactionCount)
	assert.Equal(t, 2, summary.AnomalyCount)
	assert.Equal(t, 1, summary.ReasonCounts[ReasonUnusualAmount])
	assert.Equal(t, 1, summary.ReasonCounts[ReasonMissingTaxID])
	assert.InDelta(t, 50405.0, summary.TotalAmount, 1e-9)
	assert.InDelta(t, 105.0, summary.AccountTotals["70"], 1e-9)
	assert.InDelta(t, 50300.0, summary.AccountTotals["60.01"], 1e-9)
}
