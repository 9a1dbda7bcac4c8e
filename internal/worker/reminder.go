// Package worker runs background jobs alongside the HTTP server.
package worker

import (
	"context"
	"time"

	"loopedin/internal/usecase"

	"go.uber.org/zap"
)

// ReminderWorker polls once a minute and sends update reminders for loops
// whose schedule matches the current weekday and time in the configured
// timezone. It only reads loop and member data.
type ReminderWorker struct {
	log        *zap.SugaredLogger
	uc         usecase.ReminderUsecaseInterface
	loc        *time.Location
	interval   time.Duration
	lastMinute string
}

// NewReminderWorker constructs the worker with a one-minute tick.
func NewReminderWorker(log *zap.SugaredLogger, uc usecase.ReminderUsecaseInterface, loc *time.Location) *ReminderWorker {
	return &ReminderWorker{
		log:      log.Named("worker.reminder"),
		uc:       uc,
		loc:      loc,
		interval: time.Minute,
	}
}

// Run ticks until the context is done. Tick-and-scan is deliberate: at this
// scale a poll beats maintaining a next-fire priority queue.
func (w *ReminderWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Infow("reminder worker started", "timezone", w.loc.String())
	for {
		select {
		case <-ctx.Done():
			w.log.Infow("reminder worker stopped")
			return
		case now := <-ticker.C:
			w.tick(ctx, now.In(w.loc))
		}
	}
}

func (w *ReminderWorker) tick(ctx context.Context, now time.Time) {
	// Guard against double-firing when a tick lands twice in one minute.
	minute := now.Format("2006-01-02 15:04")
	if minute == w.lastMinute {
		return
	}
	w.lastMinute = minute

	if _, err := w.uc.SendReminders(ctx, now); err != nil {
		w.log.Errorw("reminder scan failed", "error", err)
	}
}
