package stats

import (
	"context"

	"github.com/fortunaspin/fortuna/internal/domain"
)

// Repository defines the remote statistics store operations. The aggregate
// table and the spin history table are independent stores: a failure
// writing one must never block a write to the other.
type Repository interface {
	// GetPlayerStats returns nil when no row exists for the user.
	GetPlayerStats(ctx context.Context, userID string) (*domain.PlayerStats, error)
	UpsertPlayerStats(ctx context.Context, stats *domain.PlayerStats) error

	// InsertSpinHistory appends one immutable history entry.
	InsertSpinHistory(ctx context.Context, entry *domain.SpinHistoryEntry) error
	GetSpinHistory(ctx context.Context, userID string, limit int) ([]domain.SpinHistoryEntry, error)

	// GetLeaderboard returns the top rows ordered by total winnings,
	// then total spins, descending.
	GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}
