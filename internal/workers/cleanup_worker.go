package workers

import (
	"context"
	"sync"
	"time"

	"appointly/internal/logger"
	"appointly/internal/repositories"

	"gorm.io/gorm"
)

const cleanupWorkerName = "credential_cleanup"

// DefaultCleanupInterval используется, если интервал в конфиге не задан
const DefaultCleanupInterval = time.Hour

// CleanupWorker периодически удаляет истекшие сессии и токены сброса пароля
type CleanupWorker struct {
	db          *gorm.DB
	sessionRepo repositories.SessionRepository
	tokenRepo   repositories.VerificationTokenRepository
	interval    time.Duration
	now         func() time.Time
	wg          sync.WaitGroup
}

func NewCleanupWorker(
	db *gorm.DB,
	sessionRepo repositories.SessionRepository,
	tokenRepo repositories.VerificationTokenRepository,
	interval time.Duration,
) *CleanupWorker {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	return &CleanupWorker{
		db:          db,
		sessionRepo: sessionRepo,
		tokenRepo:   tokenRepo,
		interval:    interval,
		now:         time.Now,
	}
}

// Start запускает воркер в отдельной горутине; остановка - отменой ctx и Wait
func (w *CleanupWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.loop(ctx)
	}()
}

// Wait блокируется до выхода из цикла
func (w *CleanupWorker) Wait() {
	w.wg.Wait()
}

func (w *CleanupWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("worker started", "worker", cleanupWorkerName, "interval", w.interval.String())
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker stopped", "worker", cleanupWorkerName)
			return
		case <-ticker.C:
			_, _ = w.RunOnce(ctx)
		}
	}
}

// RunOnce выполняет один проход и возвращает число удалённых сессий и токенов
func (w *CleanupWorker) RunOnce(ctx context.Context) (sessions int64, tokens int64) {
	db := w.db.WithContext(ctx)
	now := w.now()

	sessions, err := w.sessionRepo.DeleteExpired(db, now)
	if err != nil {
		logger.WorkerLog(cleanupWorkerName, "delete_expired_sessions", err)
	}

	tokens, err = w.tokenRepo.DeleteExpired(db, now)
	if err != nil {
		logger.WorkerLog(cleanupWorkerName, "delete_expired_tokens", err)
	}

	if sessions > 0 || tokens > 0 {
		logger.WorkerLog(cleanupWorkerName, "purge", nil, "sessions", sessions, "tokens", tokens)
	}
	return sessions, tokens
}
