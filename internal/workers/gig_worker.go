package workers

import (
	"context"
	"time"

	"heyprodata_backend/internal/logger"
	"heyprodata_backend/internal/repositories"
)

// GigWorker expires gigs whose ExpiresAt has passed.
type GigWorker struct {
	gigRepo  repositories.GigRepository
	interval time.Duration
}

func NewGigWorker(gigRepo repositories.GigRepository) *GigWorker {
	return &GigWorker{
		gigRepo:  gigRepo,
		interval: time.Hour,
	}
}

func (w *GigWorker) Start(ctx context.Context) {
	go w.expireLoop(ctx)
}

func (w *GigWorker) expireLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("gig worker stopped")
			return
		case <-ticker.C:
			count, err := w.gigRepo.ExpireOverdue(time.Now())
			if err != nil {
				logger.WorkerLog("gig_worker", "expire_overdue", err)
				continue
			}
			if count > 0 {
				logger.Info("expired overdue gigs", "count", count)
			}
		}
	}
}
