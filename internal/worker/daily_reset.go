package worker

import (
	"context"
	"sync"
	"time"

	"github.com/fortunaspin/fortuna/internal/logger"
)

// DailyResetter clears stale per-player daily spin counters. Counters
// whose recorded date differs from the supplied date are zeroed.
type DailyResetter interface {
	ResetStaleDailyCounts(ctx context.Context, date string) (int64, error)
}

// DailyResetWorker zeroes stale daily spin counters at local midnight in
// the configured reset timezone. The cap check already treats a counter
// from a previous date as zero, so the sweep is housekeeping that keeps
// the stored counters honest rather than a correctness requirement.
type DailyResetWorker struct {
	resetter DailyResetter
	location *time.Location
	now      func() time.Time
	timer    *time.Timer
	shutdown chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
}

// NewDailyResetWorker creates a worker that resets counters against loc.
// A nil location defaults to UTC.
func NewDailyResetWorker(resetter DailyResetter, loc *time.Location) *DailyResetWorker {
	if loc == nil {
		loc = time.UTC
	}
	return &DailyResetWorker{
		resetter: resetter,
		location: loc,
		now:      time.Now,
		shutdown: make(chan struct{}),
	}
}

// Start schedules the first reset.
func (w *DailyResetWorker) Start() {
	w.scheduleNext()
}

// scheduleNext calculates the time until the next local midnight and arms
// the timer.
func (w *DailyResetWorker) scheduleNext() {
	duration := w.timeUntilNextReset()
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}

	// Two-stage scheduling to prevent "tight loop" rescheduling caused by early triggers
	if duration > 1*time.Hour {
		// Stage 1: Long-range (Standby). Wake up 45 minutes before reset.
		waitDuration := duration - 45*time.Minute
		w.timer = time.AfterFunc(waitDuration, func() {
			w.scheduleNext()
		})
		w.mu.Unlock()

		log.Info(LogMsgDailyResetStandby, "next_check_at", w.now().UTC().Add(waitDuration))
		return
	}

	// Stage 2: Final approach. Schedule the actual reset.
	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// If the timer fired early by more than the jitter allowance,
		// reschedule for the remaining time. A remainder above 23h means
		// the reset moment has already passed and a full day was added.
		rem := w.timeUntilNextReset()
		if rem > 10*time.Second && rem < 23*time.Hour {
			w.scheduleNext()
			return
		}

		w.executeReset()
		w.scheduleNext()
	})
	w.mu.Unlock()

	log.Info(LogMsgDailyResetApproach, "next_reset_at", w.now().UTC().Add(duration))
}

// executeReset performs the counter sweep in a tracked goroutine.
func (w *DailyResetWorker) executeReset() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ctx := context.Background()
		log := logger.FromContext(ctx)
		log.Info(LogMsgDailyResetStarting)

		today := w.now().In(w.location).Format(time.DateOnly)
		recordsAffected, err := w.resetter.ResetStaleDailyCounts(ctx, today)
		if err != nil {
			log.Error(LogMsgDailyResetFailed, "error", err)
			return
		}

		log.Info(LogMsgDailyResetCompleted, "records_affected", recordsAffected)
	}()
}

// timeUntilNextReset returns the duration until the next local midnight.
func (w *DailyResetWorker) timeUntilNextReset() time.Duration {
	now := w.now().In(w.location)
	nextReset := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, w.location)
	if !nextReset.After(now) {
		nextReset = nextReset.AddDate(0, 0, 1)
	}
	return nextReset.Sub(now)
}

// Shutdown cancels the pending timer and waits for an in-flight sweep to
// complete, bounded by ctx.
func (w *DailyResetWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDailyResetShutdown)

	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
		log.Info(LogMsgDailyResetCancelled)
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
