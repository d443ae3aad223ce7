package ledger

import (
	"context"

	"github.com/fortunaspin/fortuna/internal/domain"
)

// Store persists per-player ledger snapshots keyed by player id (identity
// key, or device id for anonymous play). Load returns a zeroed snapshot
// when the player has no record yet.
//
// A Save failure must be surfaced to the caller: the spin result is not
// final until the updated snapshot is durable.
type Store interface {
	Load(ctx context.Context, playerID string) (domain.LedgerSnapshot, error)
	Save(ctx context.Context, playerID string, snapshot domain.LedgerSnapshot) error

	// Daily spin accounting for the capped eligibility policy. The date is
	// a local-zone date string; a mismatch with the current date means the
	// counter is stale and resets.
	DailyCount(ctx context.Context, playerID string) (date string, count int, err error)
	SetDailyCount(ctx context.Context, playerID, date string, count int) error
}
