package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerSnapshot is the durable per-player aggregate of spin results.
// TotalWins never exceeds TotalSpins; TotalWinnings and TotalPoints are
// monotonically non-decreasing over the snapshot's lifetime.
type LedgerSnapshot struct {
	TotalSpins    int64           `json:"total_spins"`
	TotalWins     int64           `json:"total_wins"`
	TotalWinnings decimal.Decimal `json:"total_winnings"`
	TotalPoints   int64           `json:"total_points"`
}

// NewLedgerSnapshot returns a zeroed snapshot with a valid decimal.
func NewLedgerSnapshot() LedgerSnapshot {
	return LedgerSnapshot{TotalWinnings: decimal.Zero}
}

// Equal reports field-wise equality between two snapshots.
func (s LedgerSnapshot) Equal(o LedgerSnapshot) bool {
	return s.TotalSpins == o.TotalSpins &&
		s.TotalWins == o.TotalWins &&
		s.TotalWinnings.Equal(o.TotalWinnings) &&
		s.TotalPoints == o.TotalPoints
}

// Result types for spin history entries
const (
	ResultTypeWin  = "win"
	ResultTypeLoss = "loss"
)

// SpinHistoryEntry is one immutable record of a completed spin.
// Entries are append-only: never mutated or deleted after creation.
type SpinHistoryEntry struct {
	ID           int64           `json:"id"`
	UserID       string          `json:"user_id"`
	ResultType   string          `json:"result_type"`
	Amount       decimal.Decimal `json:"amount"`
	SegmentName  string          `json:"segment_name"`
	PointsEarned int64           `json:"points_earned"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PlayerStats is the remote statistics row for one identity: the shared
// copy of the ledger plus display metadata.
type PlayerStats struct {
	UserID    string         `json:"user_id"`
	Username  string         `json:"username"`
	AvatarURL string         `json:"pfp_url"`
	Snapshot  LedgerSnapshot `json:"snapshot"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// LeaderboardEntry is one ranked row, ordered by total winnings then spins.
type LeaderboardEntry struct {
	Rank          int             `json:"rank"`
	UserID        string          `json:"user_id"`
	Username      string          `json:"username"`
	AvatarURL     string          `json:"pfp_url"`
	TotalWinnings decimal.Decimal `json:"total_usdc"`
	TotalSpins    int64           `json:"total_spins"`
	TotalPoints   int64           `json:"total_points"`
}
