package workers

import (
	"context"
	"time"

	"heyprodata_backend/internal/logger"
	"heyprodata_backend/internal/repositories"
)

// notificationRetention is how long read notifications are kept.
const notificationRetention = 30 * 24 * time.Hour

// NotificationWorker prunes old read notifications once a day.
type NotificationWorker struct {
	notificationRepo repositories.NotificationRepository
	interval         time.Duration
}

func NewNotificationWorker(notificationRepo repositories.NotificationRepository) *NotificationWorker {
	return &NotificationWorker{
		notificationRepo: notificationRepo,
		interval:         24 * time.Hour,
	}
}

func (w *NotificationWorker) Start(ctx context.Context) {
	go w.cleanupLoop(ctx)
}

func (w *NotificationWorker) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("notification worker stopped")
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-notificationRetention)
			count, err := w.notificationRepo.DeleteReadOlderThan(cutoff)
			if err != nil {
				logger.WorkerLog("notification_worker", "delete_read_older_than", err)
				continue
			}
			if count > 0 {
				logger.Info("pruned read notifications", "count", count)
			}
		}
	}
}
