package models

import (
	"time"
)

// ExtractedRecord представляет одну запись, полученную от сервиса распознавания документов.
// Либо заполнены поля транзакции, либо Error (маркер ошибки извлечения).
type ExtractedRecord struct {
	SupplierTaxID    string `json:"supplier_tax_id"`
	CounterpartyName string `json:"counterparty_name"`
	Amount           string `json:"amount"`
	Date             string `json:"date"`
	Purpose          string `json:"purpose"`
	Error            string `json:"error,omitempty"`
	RawOutput        string `json:"raw_output,omitempty"`
}

// HasError сообщает, что запись является маркером ошибки извлечения
func (r ExtractedRecord) HasError() bool {
	return r.Error != ""
}

// TransactionRecord представляет транзакцию на всех этапах конвейера:
// нормализация суммы → классификация → поиск аномалий → сохранение.
type TransactionRecord struct {
	ID               int64    `json:"id,omitempty"`
	FileID           int64    `json:"file_id,omitempty"`
	SupplierTaxID    string   `json:"supplier_tax_id"`
	CounterpartyName string   `json:"counterparty_name"`
	RawAmount        string   `json:"amount"`
	NormalizedAmount float64  `json:"normalized_amount"` // 0.0 - сумма отсутствует или не распознана
	Date             string   `json:"date"`
	Purpose          string   `json:"purpose"`
	AccountCode      string   `json:"account_code"`
	IsAnomaly        bool     `json:"is_anomaly"`
	AnomalyReasons   []string `json:"anomaly_reasons"`
	Error            string   `json:"error,omitempty"`
	RawOutput        string   `json:"raw_output,omitempty"`
}

// NewTransactionRecord создает рабочую запись конвейера из извлеченной записи
func NewTransactionRecord(r ExtractedRecord) *TransactionRecord {
	return &TransactionRecord{
		SupplierTaxID:    r.SupplierTaxID,
		CounterpartyName: r.CounterpartyName,
		RawAmount:        r.Amount,
		Date:             r.Date,
		Purpose:          r.Purpose,
		AnomalyReasons:   []string{},
		Error:            r.Error,
		RawOutput:        r.RawOutput,
	}
}

// HasError сообщает, что запись помечена как ошибка извлечения
func (t *TransactionRecord) HasError() bool {
	return t.Error != ""
}

// BatchRequest представляет запрос на обработку пакета записей одного файла
type BatchRequest struct {
	Filename     string            `json:"filename" binding:"required"`
	FileType     string            `json:"file_type"`
	Records      []ExtractedRecord `json:"records"`
	UserQuestion string            `json:"user_question,omitempty"`
	AIAnswer     string            `json:"ai_answer,omitempty"`
}

// BatchResult представляет результат обработки пакета
type BatchResult struct {
	FileID       int64                `json:"file_id"`
	Status       string               `json:"status"`
	Transactions []*TransactionRecord `json:"transactions"`
	Diagnostics  []ExtractedRecord    `json:"diagnostics"`
	AnomalyCount int                  `json:"anomaly_count"`
}

// LedgerEvent представляет событие об обработанном файле в Kafka
type LedgerEvent struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      LedgerEventData `json:"data"`
}

// LedgerEventData представляет данные события об обработанном файле
type LedgerEventData struct {
	FileID           int64          `json:"file_id"`
	Filename         string         `json:"filename"`
	FileType         string         `json:"file_type"`
	TransactionCount int            `json:"transaction_count"`
	AnomalyCount     int            `json:"anomaly_count"`
	ReasonCounts     map[string]int `json:"reason_counts"`
}
