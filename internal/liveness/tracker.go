package liveness

import (
	"sync"
	"time"

	"ai-accountant/internal/models"
)

// DefaultSessionTimeout - окно неактивности, после которого сессия считается offline
const DefaultSessionTimeout = 60 * time.Second

// Tracker учитывает активные сессии и файлы в обработке.
// Все операции выполняются под одной блокировкой и не делают I/O.
type Tracker struct {
	mu         sync.Mutex
	sessions   map[string]time.Time
	processing map[string]struct{}
	timeout    time.Duration
	now        func() time.Time
}

// NewTracker создает трекер с заданным окном неактивности
func NewTracker(timeout time.Duration) *Tracker {
	return NewTrackerWithClock(timeout, time.Now)
}

// NewTrackerWithClock создает трекер с собственным источником времени
func NewTrackerWithClock(timeout time.Duration, now func() time.Time) *Tracker {
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}
	return &Tracker{
		sessions:   make(map[string]time.Time),
		processing: make(map[string]struct{}),
		timeout:    timeout,
		now:        now,
	}
}

// Touch отмечает активность сессии и удаляет неактивные сессии
func (t *Tracker) Touch(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.sessions[sessionID] = now
	t.purgeLocked(now)
}

// purgeLocked удаляет сессии, не проявлявшие активность дольше timeout.
// Вызывается только под t.mu.
func (t *Tracker) purgeLocked(now time.Time) {
	for id, lastSeen := range t.sessions {
		if now.Sub(lastSeen) > t.timeout {
			delete(t.sessions, id)
		}
	}
}

// BeginProcessing добавляет файл в множество обрабатываемых
func (t *Tracker) BeginProcessing(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.processing[name] = struct{}{}
}

// EndProcessing удаляет файл из множества обрабатываемых; отсутствующее имя игнорируется
func (t *Tracker) EndProcessing(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.processing, name)
}

// Track выполняет fn, пока name числится в обработке
func (t *Tracker) Track(name string, fn func() error) error {
	t.BeginProcessing(name)
	defer t.EndProcessing(name)
	return fn()
}

// Snapshot возвращает счетчики по состоянию на последнюю очистку.
// Сам по себе неактивные сессии не удаляет.
func (t *Tracker) Snapshot() models.LivenessSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return models.LivenessSnapshot{
		OnlineSessions: len(t.sessions),
		Processing:     len(t.processing),
	}
}
