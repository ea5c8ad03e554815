package generator

import (
	"strings"
	"testing"

	"ai-accountant/internal/accounting"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBatchGenerator(t *testing.T) {
	gen := NewBatchGenerator()
	require.NotNil(t, gen)
	assert.NotNil(t, gen.rand)
}

func TestBatchGenerator_DefaultSize(t *testing.T) {
	gen := NewBatchGeneratorWithSeed(1)

	batch := gen.GenerateBatch(Options{})
	require.NotNil(t, batch)
	assert.Len(t, batch.Records, DefaultBatchSize)
	assert.True(t, strings.HasPrefix(batch.Filename, "generated-"))
	assert.Equal(t, "pdf", batch.FileType)

	for _, record := range batch.Records {
		assert.False(t, record.HasError())
		assert.Len(t, record.SupplierTaxID, 10)
		assert.NotEmpty(t, record.CounterpartyName)
		assert.NotEmpty(t, record.Purpose)

		amount := accounting.NormalizeAmount(record.Amount)
		assert.GreaterOrEqual(t, amount, 10000.0)
		assert.LessOrEqual(t, amount, 100000.0)
	}
}

func TestBatchGenerator_SizeLimits(t *testing.T) {
	gen := NewBatchGeneratorWithSeed(1)

	assert.Len(t, gen.GenerateBatch(Options{Size: 3}).Records, 3)
	assert.Len(t, gen.GenerateBatch(Options{Size: MaxBatchSize + 10}).Records, MaxBatchSize)
}

func TestBatchGenerator_WithOutlier(t *testing.T) {
	gen := NewBatchGeneratorWithSeed(2)

	batch := gen.GenerateBatch(Options{Size: 6, WithOutlier: true})
	require.Len(t, batch.Records, 6)

	outlier := accounting.NormalizeAmount(batch.Records[5].Amount)
	assert.GreaterOrEqual(t, outlier, 1000000.0)
}

func TestBatchGenerator_WithMissing(t *testing.T) {
	gen := NewBatchGeneratorWithSeed(3)

	batch := gen.GenerateBatch(Options{Size: 5, WithMissing: true})

	missing := 0
	for _, record := range batch.Records {
		if accounting.IsPlaceholder(record.SupplierTaxID) && accounting.IsPlaceholder(record.CounterpartyName) {
			missing++
			assert.Zero(t, accounting.NormalizeAmount(record.Amount))
		}
	}
	assert.Equal(t, 1, missing)
}

func TestBatchGenerator_WithError(t *testing.T) {
	gen := NewBatchGeneratorWithSeed(4)

	batch := gen.GenerateBatch(Options{Size: 4, WithError: true})
	require.Len(t, batch.Records, 5)
	assert.True(t, batch.Records[4].HasError())
	assert.NotEmpty(t, batch.Records[4].RawOutput)
}

func TestBatchGenerator_SameSeedSameBatch(t *testing.T) {
	first := NewBatchGeneratorWithSeed(42).GenerateBatch(Options{Size: 5})
	second := NewBatchGeneratorWithSeed(42).GenerateBatch(Options{Size: 5})

	for i := range first.Records {
		assert.Equal(t, first.Records[i].Amount, second.Records[i].Amount)
		assert.Equal(t, first.Records[i].Purpose, second.Records[i].Purpose)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{0, "0,00"},
		{999.5, "999,50"},
		{1234.56, "1 234,56"},
		{1000000, "1 000 000,00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			formatted := formatAmount(tt.value)
			assert.Equal(t, tt.expected, formatted)
			assert.Equal(t, tt.value, accounting.NormalizeAmount(formatted))
		})
	}
}
