package anomaly

import (
	"ai-accountant/internal/accounting"
	"ai-accountant/internal/models"
)

const (
	MinBatchSize       = 3    // меньше - статистика не имеет смысла
	MinPositiveAmounts = 3    // минимум положительных сумм для модели
	Contamination      = 0.15 // ожидаемая доля выбросов
	RandomSeed         = 42
)

// Причины аномалий
const (
	ReasonUnusualAmount       = "unusual amount"
	ReasonMissingTaxID        = "missing tax ID"
	ReasonMissingCounterparty = "missing counterparty"
	ReasonZeroAmount          = "zero or missing amount"
)

// Detector ищет аномалии в пакете транзакций.
// Не хранит состояние между вызовами, один пакет нельзя обрабатывать параллельно.
type Detector struct {
	contamination float64
	seed          int64
}

func NewDetector() *Detector {
	return &Detector{
		contamination: Contamination,
		seed:          RandomSeed,
	}
}

// Detect размечает записи пакета на месте и возвращает тот же срез.
// Сначала статистический флаг, затем структурные проверки в фиксированном порядке.
func (d *Detector) Detect(batch []*models.TransactionRecord) []*models.TransactionRecord {
	if len(batch) < MinBatchSize {
		for _, tx := range batch {
			tx.IsAnomaly = false
			tx.AnomalyReasons = []string{}
		}
		return batch
	}

	outliers := d.detectOutliers(batch)

	for i, tx := range batch {
		reasons := []string{}

		// 1. Необычная сумма (только для положительных сумм)
		if outliers[i] && tx.NormalizedAmount > 0 {
			reasons = append(reasons, ReasonUnusualAmount)
		}

		// 2. Отсутствует ИНН поставщика
		if accounting.IsPlaceholder(tx.SupplierTaxID) {
			reasons = append(reasons, ReasonMissingTaxID)
		}

		// 3. Отсутствует контрагент
		if accounting.IsPlaceholder(tx.CounterpartyName) {
			reasons = append(reasons, ReasonMissingCounterparty)
		}

		// 4. Нулевая или нераспознанная сумма
		if tx.NormalizedAmount == 0 {
			reasons = append(reasons, ReasonZeroAmount)
		}

		tx.IsAnomaly = len(reasons) > 0
		tx.AnomalyReasons = reasons
	}

	return batch
}

// detectOutliers запускает модель по суммам всего пакета,
// если положительных сумм достаточно
func (d *Detector) detectOutliers(batch []*models.TransactionRecord) []bool {
	amounts := make([]float64, len(batch))
	positive := 0
	for i, tx := range batch {
		amounts[i] = tx.NormalizedAmount
		if tx.NormalizedAmount > 0 {
			positive++
		}
	}

	if positive < MinPositiveAmounts {
		return make([]bool, len(batch))
	}

	model := NewIsolationForest(d.contamination, d.seed)
	return model.Predict(amounts)
}

// Summarize собирает сводку по размеченному пакету
func Summarize(fileID int64, batch []*models.TransactionRecord) *models.AnomalySummary {
	summary := &models.AnomalySummary{
		FileID:           fileID,
		TransactionCount: len(batch),
		ReasonCounts:     make(map[string]int),
		AccountTotals:    make(map[string]float64),
	}

	for _, tx := range batch {
		summary.TotalAmount += tx.NormalizedAmount
		summary.AccountTotals[tx.AccountCode] += tx.NormalizedAmount
		if tx.IsAnomaly {
			summary.AnomalyCount++
		}
		for _, reason := range tx.AnomalyReasons {
			summary.ReasonCounts[reason]++
		}
	}

	return summary
}
