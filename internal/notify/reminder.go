package notify

import (
	"context"
	"sync"
	"time"

	"github.com/fortunaspin/fortuna/internal/logger"
)

// ReminderWorker fires the daily spin reminder at a fixed UTC hour.
type ReminderWorker struct {
	service Service
	hourUTC int
	timer   *time.Timer

	shutdown chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
}

// NewReminderWorker creates a worker that delivers reminders at hourUTC
// each day.
func NewReminderWorker(service Service, hourUTC int) *ReminderWorker {
	return &ReminderWorker{
		service:  service,
		hourUTC:  hourUTC,
		shutdown: make(chan struct{}),
	}
}

// Start schedules the first delivery.
func (w *ReminderWorker) Start() {
	w.scheduleNext()
}

func (w *ReminderWorker) timeUntilNext() time.Duration {
	now := time.Now().UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), w.hourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}

// scheduleNext arms the delivery timer. Long waits are split in two: a
// standby timer that wakes shortly before the target hour, then the final
// timer. Rearming on wake absorbs timer drift over multi-hour waits.
func (w *ReminderWorker) scheduleNext() {
	duration := w.timeUntilNext()
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}

	if duration > time.Hour {
		waitDuration := duration - 45*time.Minute
		w.timer = time.AfterFunc(waitDuration, func() {
			w.scheduleNext()
		})
		w.mu.Unlock()

		log.Info(LogMsgReminderStandby, "next_check_at", time.Now().UTC().Add(waitDuration))
		return
	}

	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// An early trigger leaves a short remainder; reschedule instead
		// of firing ahead of the hour.
		rem := w.timeUntilNext()
		if rem > 10*time.Second && rem < 23*time.Hour {
			w.scheduleNext()
			return
		}

		w.deliver()
		w.scheduleNext()
	})
	w.mu.Unlock()

	log.Info(LogMsgReminderApproach, "next_delivery_at", time.Now().UTC().Add(duration))
}

func (w *ReminderWorker) deliver() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ctx := context.Background()
		log := logger.FromContext(ctx)
		log.Info(LogMsgReminderStarting)

		notified, err := w.service.SendReminders(ctx)
		if err != nil {
			log.Error(LogMsgReminderFailed, "error", err)
			return
		}

		log.Info(LogMsgReminderCompleted, "notified", notified)
	}()
}

// Shutdown cancels the pending timer and waits for an in-flight delivery.
func (w *ReminderWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgReminderShutdown)

	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgReminderShutdownDone)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
