package rest

import (
	"errors"
	"net/http"
	"strconv"

	"ai-accountant/internal/accounting"
	"ai-accountant/internal/generator"
	"ai-accountant/internal/liveness"
	"ai-accountant/internal/logger"
	"ai-accountant/internal/models"
	"ai-accountant/internal/services"
	"ai-accountant/internal/storage"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	ledgerService services.LedgerService
	tracker       *liveness.Tracker
	generator     *generator.BatchGenerator
}

// Создает новые обработчики REST API
func NewHandlers(ledgerService services.LedgerService, tracker *liveness.Tracker) *Handlers {
	return &Handlers{
		ledgerService: ledgerService,
		tracker:       tracker,
		generator:     generator.NewBatchGenerator(),
	}
}

// UploadFile принимает извлеченные записи файла и проводит их через конвейер
// @Summary Обработать записи файла
// @Description Принимает записи, извлеченные из документа, нормализует суммы, подбирает счета, размечает аномалии и сохраняет файл вместе с транзакциями. Записи с маркером ошибки возвращаются в diagnostics и не сохраняются.
// @Tags files
// @Accept json
// @Produce json
// @Param batch body models.BatchRequest true "Записи файла"
// @Success 201 {object} models.BatchResult "Файл обработан"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/v1/files [post]
func (h *Handlers) UploadFile(c *gin.Context) {
	log := logger.FromContext(c.Request.Context())

	var req models.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.ledgerService.ProcessBatch(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmptyFilename) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if storage.IsStorageError(err) {
			log.Error().Err(err).Str("filename", req.Filename).Msg("Storage failure while saving file")
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	log.Info().
		Int64("file_id", result.FileID).
		Int("transactions", len(result.Transactions)).
		Int("anomalies", result.AnomalyCount).
		Msg("File processed")

	c.JSON(http.StatusCreated, result)
}

// ListFiles возвращает список загруженных файлов
// @Summary Получить список файлов
// @Description Возвращает все загруженные файлы с количеством транзакций, новые первыми
// @Tags files
// @Produce json
// @Success 200 {object} map[string]interface{} "Список файлов"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/v1/files [get]
func (h *Handlers) ListFiles(c *gin.Context) {
	files, err := h.ledgerService.ListFiles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list files"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files})
}

// GetFile возвращает файл со всеми транзакциями
// @Summary Получить файл
// @Description Возвращает метаданные файла и его транзакции в порядке вставки
// @Tags files
// @Produce json
// @Param id path int true "ID файла"
// @Success 200 {object} models.FileWithTransactions "Файл с транзакциями"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/v1/files/{id} [get]
func (h *Handlers) GetFile(c *gin.Context) {
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}

	file, err := h.ledgerService.GetFile(fileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get file"})
		return
	}

	if file == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	c.JSON(http.StatusOK, file)
}

// GetFileSummary возвращает сводку аномалий по файлу
// @Summary Получить сводку по файлу
// @Description Возвращает количество аномалий, причины и суммы по счетам. Сводка берется из кэша Redis, при промахе собирается из БД.
// @Tags files
// @Produce json
// @Param id path int true "ID файла"
// @Success 200 {object} models.AnomalySummary "Сводка"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/v1/files/{id}/summary [get]
func (h *Handlers) GetFileSummary(c *gin.Context) {
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}

	summary, err := h.ledgerService.GetFileSummary(fileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get file summary"})
		return
	}

	if summary == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetAnomalyStats возвращает накопленную статистику причин аномалий
// @Summary Статистика аномалий
// @Description Возвращает количество обработанных файлов и счетчики причин аномалий
// @Tags anomalies
// @Produce json
// @Success 200 {object} models.AnomalyStats "Статистика"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/v1/anomalies/stats [get]
func (h *Handlers) GetAnomalyStats(c *gin.Context) {
	stats, err := h.ledgerService.GetAnomalyStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get anomaly stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetLiveness возвращает число активных сессий и файлов в обработке
// @Summary Активность сервиса
// @Description Возвращает количество сессий, активных в окне неактивности, и количество файлов в обработке
// @Tags liveness
// @Produce json
// @Success 200 {object} models.LivenessSnapshot "Снимок активности"
// @Router /api/v1/liveness [get]
func (h *Handlers) GetLiveness(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.Snapshot())
}

// GetAccounts возвращает таблицу правил классификации
// @Summary Правила классификации
// @Description Возвращает ключевые слова и счета в порядке применения; последнее правило - счет по умолчанию
// @Tags accounts
// @Produce json
// @Success 200 {object} map[string]interface{} "Правила"
// @Router /api/v1/accounts [get]
func (h *Handlers) GetAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rules": accounting.Rules()})
}

// GenerateBatch генерирует тестовый пакет записей
// @Summary Сгенерировать пакет записей
// @Description Генерирует записи в формате сервиса распознавания для проверки конвейера
// @Tags files
// @Produce json
// @Param size query int false "Количество записей (максимум 500)" default(8)
// @Param outlier query bool false "Добавить выброс по сумме"
// @Param missing query bool false "Добавить запись без реквизитов"
// @Param error query bool false "Добавить маркер ошибки извлечения"
// @Success 200 {object} models.BatchRequest "Сгенерированный пакет"
// @Router /api/v1/files/generate [get]
func (h *Handlers) GenerateBatch(c *gin.Context) {
	opts := generator.Options{
		Size:        generator.DefaultBatchSize,
		WithOutlier: queryBool(c, "outlier"),
		WithMissing: queryBool(c, "missing"),
		WithError:   queryBool(c, "error"),
	}
	if sizeStr := c.Query("size"); sizeStr != "" {
		if parsed, err := strconv.Atoi(sizeStr); err == nil && parsed > 0 && parsed <= generator.MaxBatchSize {
			opts.Size = parsed
		}
	}

	c.JSON(http.StatusOK, h.generator.GenerateBatch(opts))
}

func parseFileID(c *gin.Context) (int64, bool) {
	fileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || fileID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file id"})
		return 0, false
	}
	return fileID, true
}

func queryBool(c *gin.Context, key string) bool {
	value, err := strconv.ParseBool(c.Query(key))
	return err == nil && value
}
