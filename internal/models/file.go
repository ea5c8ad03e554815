package models

import (
	"time"
)

// Статусы загруженного файла
const (
	FileStatusSuccess = "success"
	FileStatusPartial = "partial" // часть записей пришла с маркером ошибки
)

// UploadedFile представляет метаданные загруженного файла
type UploadedFile struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	UploadDate   time.Time `json:"upload_date"`
	FileType     string    `json:"file_type"`
	Status       string    `json:"status"`
	UserQuestion string    `json:"user_question,omitempty"`
	AIAnswer     string    `json:"ai_answer,omitempty"`
}

// FileSummary представляет строку списка файлов с количеством транзакций
type FileSummary struct {
	UploadedFile
	TransactionCount int `json:"transaction_count"`
}

// FileWithTransactions представляет файл вместе со всеми его транзакциями
type FileWithTransactions struct {
	UploadedFile
	Transactions []*TransactionRecord `json:"transactions"`
}

// AnomalySummary представляет агрегированную сводку аномалий по файлу
type AnomalySummary struct {
	FileID           int64              `json:"file_id" msgpack:"file_id"`
	TransactionCount int                `json:"transaction_count" msgpack:"transaction_count"`
	AnomalyCount     int                `json:"anomaly_count" msgpack:"anomaly_count"`
	TotalAmount      float64            `json:"total_amount" msgpack:"total_amount"`
	ReasonCounts     map[string]int     `json:"reason_counts" msgpack:"reason_counts"`
	AccountTotals    map[string]float64 `json:"account_totals" msgpack:"account_totals"`
}

// LivenessSnapshot представляет текущую активность: сессии онлайн и файлы в обработке
type LivenessSnapshot struct {
	OnlineSessions int `json:"online_sessions"`
	Processing     int `json:"processing"`
}

// AnomalyStats представляет накопленную статистику причин аномалий по всем файлам
type AnomalyStats struct {
	ProcessedFiles int64            `json:"processed_files"`
	ReasonCounts   map[string]int64 `json:"reason_counts"`
	Source         string           `json:"source"` // redis или storage
}
