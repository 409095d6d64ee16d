package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SlotPurger удаляет слоты, время которых уже прошло
type SlotPurger interface {
	PurgePastSlots(ctx context.Context) (int64, error)
}

// Scheduler периодически чистит прошедшие слоты
type Scheduler struct {
	purger   SlotPurger
	interval time.Duration
	logger   *zap.Logger
	stopChan  chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
}

func NewScheduler(purger SlotPurger, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		purger:   purger,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновую задачу. При нулевом интервале ничего не делает.
// Повторные вызовы и вызов после Stop игнорируются.
func (s *Scheduler) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		if s.interval <= 0 {
			close(s.done)
			return
		}

		s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))
		go s.runCleanupTask(ctx)
	})
}

// Stop останавливает задачу и ждёт её завершения
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	// если Start не вызывался, ждать нечего
	s.startOnce.Do(func() { close(s.done) })
	<-s.done
}

func (s *Scheduler) runCleanupTask(ctx context.Context) {
	defer close(s.done)

	s.purge(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.purge(ctx)
		case <-s.stopChan:
			s.logger.Info("Slot cleanup task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Slot cleanup task cancelled")
			return
		}
	}
}

func (s *Scheduler) purge(ctx context.Context) {
	removed, err := s.purger.PurgePastSlots(ctx)
	if err != nil {
		s.logger.Error("Failed to purge past slots", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("Past slots purged", zap.Int64("removed", removed))
	}
}
