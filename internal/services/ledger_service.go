package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"ai-accountant/internal/accounting"
	"ai-accountant/internal/anomaly"
	"ai-accountant/internal/kafka"
	"ai-accountant/internal/liveness"
	"ai-accountant/internal/logger"
	"ai-accountant/internal/models"
	"ai-accountant/internal/redis"
	"ai-accountant/internal/storage"
)

const (
	serviceName = "ledger-service"

	EventTypeFileProcessed = "file_processed"

	StatsSourceRedis   = "redis"
	StatsSourceStorage = "storage"
)

// LedgerServiceImpl реализует интерфейс LedgerService
type LedgerServiceImpl struct {
	repo        storage.LedgerRepository
	detector    *anomaly.Detector
	tracker     *liveness.Tracker
	producer    kafka.Producer        // Опционально: nil, если Kafka выключена
	redisClient redis.ClientInterface // Опционально: nil, если Redis выключен
}

// NewLedgerService создает сервис без Kafka и Redis
func NewLedgerService(repo storage.LedgerRepository, detector *anomaly.Detector, tracker *liveness.Tracker) LedgerService {
	return NewLedgerServiceWithIntegrations(repo, detector, tracker, nil, nil)
}

// NewLedgerServiceWithIntegrations создает сервис с публикацией событий в Kafka и кэшем в Redis.
// producer и redisClient могут быть nil.
func NewLedgerServiceWithIntegrations(
	repo storage.LedgerRepository,
	detector *anomaly.Detector,
	tracker *liveness.Tracker,
	producer kafka.Producer,
	redisClient redis.ClientInterface,
) LedgerService {
	if detector == nil {
		detector = anomaly.NewDetector()
	}
	if tracker == nil {
		tracker = liveness.NewTracker(liveness.DefaultSessionTimeout)
	}
	return &LedgerServiceImpl{
		repo:        repo,
		detector:    detector,
		tracker:     tracker,
		producer:    producer,
		redisClient: redisClient,
	}
}

// ProcessBatch обрабатывает пакет записей одного файла.
// Записи с маркером ошибки не попадают в журнал и возвращаются как диагностика.
func (s *LedgerServiceImpl) ProcessBatch(req *models.BatchRequest) (*models.BatchResult, error) {
	if req == nil || strings.TrimSpace(req.Filename) == "" {
		return nil, ErrEmptyFilename
	}

	processingName := req.Filename + "#" + uuid.New().String()

	logger.LogEvent(logger.EventBatchReceived, serviceName, "pipeline", map[string]interface{}{
		"filename": req.Filename,
		"records":  len(req.Records),
	})

	var result *models.BatchResult
	err := s.tracker.Track(processingName, func() error {
		logger.LogEvent(logger.EventProcessingStarted, serviceName, "pipeline", map[string]interface{}{
			"filename":   req.Filename,
			"processing": processingName,
		})

		batch, diagnostics := splitRecords(req.Records)
		for _, tx := range batch {
			tx.NormalizedAmount = accounting.NormalizeAmount(tx.RawAmount)
			tx.AccountCode = accounting.ClassifyTransaction(tx.Purpose)
		}

		s.detector.Detect(batch)
		anomalyCount := countAnomalies(batch)

		logger.LogEvent(logger.EventAnomaliesDetected, serviceName, "pipeline", map[string]interface{}{
			"filename":      req.Filename,
			"transactions":  len(batch),
			"anomaly_count": anomalyCount,
		})

		status := models.FileStatusSuccess
		if len(diagnostics) > 0 {
			status = models.FileStatusPartial
		}

		file := &models.UploadedFile{
			Filename:     req.Filename,
			FileType:     req.FileType,
			Status:       status,
			UserQuestion: req.UserQuestion,
			AIAnswer:     req.AIAnswer,
		}

		fileID, err := s.repo.SaveFile(file, batch)
		if err != nil {
			return err
		}
		file.ID = fileID

		logger.LogEvent(logger.EventFileSaved, serviceName, "sqlite", map[string]interface{}{
			"file_id":      fileID,
			"transactions": len(batch),
		})

		summary := anomaly.Summarize(fileID, batch)
		s.publishEvent(file, summary)
		s.cacheSummary(summary)

		result = &models.BatchResult{
			FileID:       fileID,
			Status:       status,
			Transactions: batch,
			Diagnostics:  diagnostics,
			AnomalyCount: anomalyCount,
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("filename", req.Filename).Msg("Failed to process batch")
		return nil, err
	}

	logger.LogEvent(logger.EventProcessingFinished, serviceName, "pipeline", map[string]interface{}{
		"file_id":       result.FileID,
		"status":        result.Status,
		"anomaly_count": result.AnomalyCount,
	})

	return result, nil
}

// publishEvent отправляет событие об обработанном файле. Ошибка Kafka не отменяет сохранение.
func (s *LedgerServiceImpl) publishEvent(file *models.UploadedFile, summary *models.AnomalySummary) {
	if s.producer == nil {
		return
	}

	event := &models.LedgerEvent{
		EventID:   "evt_" + uuid.New().String(),
		EventType: EventTypeFileProcessed,
		Timestamp: time.Now(),
		Data: models.LedgerEventData{
			FileID:           file.ID,
			Filename:         file.Filename,
			FileType:         file.FileType,
			TransactionCount: summary.TransactionCount,
			AnomalyCount:     summary.AnomalyCount,
			ReasonCounts:     summary.ReasonCounts,
		},
	}

	if err := s.producer.SendLedgerEvent(event); err != nil {
		log.Warn().Err(err).Int64("file_id", file.ID).Msg("Failed to publish ledger event")
		return
	}

	logger.LogEvent(logger.EventKafkaSent, serviceName, "kafka", map[string]interface{}{
		"file_id":  file.ID,
		"event_id": event.EventID,
	})
}

// cacheSummary кладет сводку в Redis и обновляет счетчики причин. Ошибки только логируются.
// Счетчики обновляются и при неудачной записи сводки.
func (s *LedgerServiceImpl) cacheSummary(summary *models.AnomalySummary) {
	if s.redisClient == nil {
		return
	}

	cached := true
	if err := s.redisClient.SaveFileSummary(summary); err != nil {
		log.Warn().Err(err).Int64("file_id", summary.FileID).Msg("Failed to cache file summary")
		cached = false
	}
	if err := s.redisClient.IncrementReasonStats(summary.ReasonCounts); err != nil {
		log.Warn().Err(err).Int64("file_id", summary.FileID).Msg("Failed to update anomaly stats")
		return
	}
	if !cached {
		return
	}

	logger.LogEvent(logger.EventRedisSaved, serviceName, "redis", map[string]interface{}{
		"file_id":       summary.FileID,
		"anomaly_count": summary.AnomalyCount,
	})
}

// ListFiles возвращает все загруженные файлы
func (s *LedgerServiceImpl) ListFiles() ([]*models.FileSummary, error) {
	return s.repo.ListFiles()
}

// GetFile возвращает файл с транзакциями
func (s *LedgerServiceImpl) GetFile(fileID int64) (*models.FileWithTransactions, error) {
	return s.repo.GetFile(fileID)
}

// GetFileSummary возвращает сводку из Redis, а при промахе собирает ее из хранилища
func (s *LedgerServiceImpl) GetFileSummary(fileID int64) (*models.AnomalySummary, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.GetFileSummary(fileID)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			log.Warn().Err(err).Int64("file_id", fileID).Msg("Redis summary lookup failed, using storage")
		}
	}

	file, err := s.repo.GetFile(fileID)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, nil
	}

	summary := anomaly.Summarize(fileID, file.Transactions)
	if s.redisClient != nil {
		if err := s.redisClient.SaveFileSummary(summary); err != nil {
			log.Warn().Err(err).Int64("file_id", fileID).Msg("Failed to cache file summary")
		}
	}
	return summary, nil
}

// GetAnomalyStats возвращает статистику из Redis, если счетчики сходятся с журналом,
// иначе пересчитывает ее по хранилищу
func (s *LedgerServiceImpl) GetAnomalyStats() (*models.AnomalyStats, error) {
	files, err := s.repo.ListFiles()
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		stats, err := s.statsFromRedis()
		switch {
		case err == nil && stats.ProcessedFiles == int64(len(files)):
			return stats, nil
		case err == nil:
			// Файлы, обработанные при недоступном Redis, в счетчики не попали
			log.Debug().
				Int64("redis_files", stats.ProcessedFiles).
				Int("ledger_files", len(files)).
				Msg("Redis anomaly stats are stale, using storage")
		case errors.Is(err, redis.ErrStatsNotFound):
			log.Debug().Msg("Redis anomaly stats are empty, using storage")
		default:
			log.Warn().Err(err).Msg("Redis stats lookup failed, using storage")
		}
	}

	return s.statsFromStorage(files)
}

func (s *LedgerServiceImpl) statsFromRedis() (*models.AnomalyStats, error) {
	files, err := s.redisClient.GetProcessedFileCount()
	if err != nil {
		return nil, err
	}
	reasons, err := s.redisClient.GetReasonStats()
	if err != nil {
		return nil, err
	}
	return &models.AnomalyStats{
		ProcessedFiles: files,
		ReasonCounts:   reasons,
		Source:         StatsSourceRedis,
	}, nil
}

func (s *LedgerServiceImpl) statsFromStorage(files []*models.FileSummary) (*models.AnomalyStats, error) {
	stats := &models.AnomalyStats{
		ProcessedFiles: int64(len(files)),
		ReasonCounts:   make(map[string]int64),
		Source:         StatsSourceStorage,
	}
	for _, file := range files {
		transactions, err := s.repo.GetFileTransactions(file.ID)
		if err != nil {
			return nil, err
		}
		for _, tx := range transactions {
			for _, reason := range tx.AnomalyReasons {
				stats.ReasonCounts[reason]++
			}
		}
	}
	return stats, nil
}

// splitRecords отделяет маркеры ошибок извлечения от транзакций, сохраняя порядок
func splitRecords(records []models.ExtractedRecord) ([]*models.TransactionRecord, []models.ExtractedRecord) {
	batch := make([]*models.TransactionRecord, 0, len(records))
	diagnostics := make([]models.ExtractedRecord, 0)
	for _, record := range records {
		if record.HasError() {
			diagnostics = append(diagnostics, record)
			continue
		}
		batch = append(batch, models.NewTransactionRecord(record))
	}
	return batch, diagnostics
}

func countAnomalies(batch []*models.TransactionRecord) int {
	count := 0
	for _, tx := range batch {
		if tx.IsAnomaly {
			count++
		}
	}
	return count
}
