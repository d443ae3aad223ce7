package session

import (
	"context"
	"fmt"
	"time"

	"github.com/fortunaspin/fortuna/internal/domain"
	"github.com/fortunaspin/fortuna/internal/ledger"
)

// Policy decides whether a player may spin right now and records spins
// against whatever quota it enforces.
type Policy interface {
	Authorize(ctx context.Context, playerID string) error
	Record(ctx context.Context, playerID string) error
}

// UnlimitedPolicy permits every spin.
type UnlimitedPolicy struct{}

func (UnlimitedPolicy) Authorize(context.Context, string) error { return nil }
func (UnlimitedPolicy) Record(context.Context, string) error    { return nil }

// DailyCappedPolicy limits spins per player per local calendar day. The
// stored counter carries the date it was written for; a date mismatch means
// midnight has passed and the counter resets.
type DailyCappedPolicy struct {
	store ledger.Store
	cap   int
	loc   *time.Location
	now   func() time.Time // injectable for testing
}

// NewDailyCappedPolicy creates a policy allowing spinCap spins per day in
// the given timezone.
func NewDailyCappedPolicy(store ledger.Store, spinCap int, loc *time.Location) *DailyCappedPolicy {
	if loc == nil {
		loc = time.UTC
	}
	return &DailyCappedPolicy{store: store, cap: spinCap, loc: loc, now: time.Now}
}

func (p *DailyCappedPolicy) today() string {
	return p.now().In(p.loc).Format(time.DateOnly)
}

func (p *DailyCappedPolicy) Authorize(ctx context.Context, playerID string) error {
	if playerID == "" {
		return nil
	}

	date, count, err := p.store.DailyCount(ctx, playerID)
	if err != nil {
		return fmt.Errorf(ErrMsgLoadLedgerFailed, err)
	}
	if date != p.today() {
		return nil
	}
	if count >= p.cap {
		return domain.ErrSpinCapReached
	}
	return nil
}

func (p *DailyCappedPolicy) Record(ctx context.Context, playerID string) error {
	if playerID == "" {
		return nil
	}

	today := p.today()
	date, count, err := p.store.DailyCount(ctx, playerID)
	if err != nil {
		return err
	}
	if date != today {
		count = 0
	}
	return p.store.SetDailyCount(ctx, playerID, today, count+1)
}
