package generator

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"ai-accountant/internal/models"
)

// Options управляет содержимым сгенерированного пакета
type Options struct {
	Size        int  // количество записей; меньше 1 - DefaultBatchSize
	WithOutlier bool // последняя запись получает сумму на порядки больше остальных
	WithMissing bool // одна запись без ИНН, контрагента и суммы
	WithError   bool // добавить маркер ошибки извлечения
}

const (
	DefaultBatchSize = 8
	MaxBatchSize     = 500
)

type BatchGenerator struct {
	rand *rand.Rand
}

func NewBatchGenerator() *BatchGenerator {
	return NewBatchGeneratorWithSeed(time.Now().UnixNano())
}

// NewBatchGeneratorWithSeed создает генератор с воспроизводимой последовательностью
func NewBatchGeneratorWithSeed(seed int64) *BatchGenerator {
	return &BatchGenerator{
		rand: rand.New(rand.NewSource(seed)),
	}
}

// GenerateBatch генерирует пакет записей в том виде, в каком их отдает сервис распознавания
func (g *BatchGenerator) GenerateBatch(opts Options) *models.BatchRequest {
	size := opts.Size
	if size < 1 {
		size = DefaultBatchSize
	}
	if size > MaxBatchSize {
		size = MaxBatchSize
	}

	records := make([]models.ExtractedRecord, 0, size+1)
	for i := 0; i < size; i++ {
		records = append(records, g.generateRecord())
	}

	if opts.WithMissing {
		i := g.rand.Intn(len(records))
		records[i].SupplierTaxID = g.placeholder()
		records[i].CounterpartyName = ""
		records[i].Amount = g.placeholder()
	}

	if opts.WithOutlier {
		last := len(records) - 1
		records[last].Amount = formatAmount(g.roundToTwoDecimals(1000000.0 + g.rand.Float64()*4000000.0))
	}

	if opts.WithError {
		records = append(records, models.ExtractedRecord{
			Error:     "failed to parse JSON",
			RawOutput: "Не удалось распознать таблицу на странице 2",
		})
	}

	return &models.BatchRequest{
		Filename: fmt.Sprintf("generated-%s.pdf", time.Now().Format("20060102-150405")),
		FileType: "pdf",
		Records:  records,
	}
}

func (g *BatchGenerator) generateRecord() models.ExtractedRecord {
	// Обычная сумма: 10k - 100k
	amount := g.roundToTwoDecimals(10000.0 + g.rand.Float64()*90000.0)
	date := time.Now().AddDate(0, 0, -g.rand.Intn(90))

	return models.ExtractedRecord{
		SupplierTaxID:    fmt.Sprintf("77%08d", g.rand.Intn(100000000)),
		CounterpartyName: g.getRandomCounterparty(),
		Amount:           formatAmount(amount),
		Date:             date.Format("02.01.2006"),
		Purpose:          g.getRandomPurpose(),
	}
}

func (g *BatchGenerator) getRandomCounterparty() string {
	counterparties := []string{`ООО "Вектор"`, `АО "Горизонт"`, `ИП Смирнов А.В.`, `ООО "Ромашка"`, `ПАО "Северсталь"`, `ООО "Техснаб"`}
	return counterparties[g.rand.Intn(len(counterparties))]
}

func (g *BatchGenerator) getRandomPurpose() string {
	purposes := []string{
		"Оплата по счет-фактура №%d",
		"Оплата по акту выполненных работ №%d",
		"Зарплата за месяц, ведомость №%d",
		"Перечисление налог на прибыль, платеж №%d",
		"Консультационные услуги, заказ №%d",
		"Payment under invoice %d",
	}
	return fmt.Sprintf(purposes[g.rand.Intn(len(purposes))], 1+g.rand.Intn(999))
}

func (g *BatchGenerator) placeholder() string {
	placeholders := []string{"", "не указан", "not specified"}
	return placeholders[g.rand.Intn(len(placeholders))]
}

// roundToTwoDecimals округляет число до 2 знаков после запятой
func (g *BatchGenerator) roundToTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// formatAmount форматирует сумму как в документах: "12 345,67"
func formatAmount(value float64) string {
	raw := fmt.Sprintf("%.2f", value)
	intPart, fracPart := raw[:len(raw)-3], raw[len(raw)-2:]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(digit)
	}
	return b.String() + "," + fracPart
}
