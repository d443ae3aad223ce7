package stats

import (
	"github.com/shopspring/decimal"

	"github.com/fortunaspin/fortuna/internal/domain"
)

// MergeSnapshots combines two ledger snapshots field by field, taking the
// maximum of each counter independently. The merge is commutative and
// idempotent by construction, so concurrent writers for the same identity
// never need coordination: progress from any device survives, at the cost
// of a local reset never decreasing the remote value.
//
// Independent per-field maxima can pair more wins than spins when the two
// sides diverged inconsistently; the result is clamped so the merged
// snapshot still satisfies wins <= spins.
func MergeSnapshots(a, b domain.LedgerSnapshot) domain.LedgerSnapshot {
	merged := domain.LedgerSnapshot{
		TotalSpins:    maxInt64(a.TotalSpins, b.TotalSpins),
		TotalWins:     maxInt64(a.TotalWins, b.TotalWins),
		TotalWinnings: decimalMax(a, b),
		TotalPoints:   maxInt64(a.TotalPoints, b.TotalPoints),
	}

	if merged.TotalWins > merged.TotalSpins {
		merged.TotalWins = merged.TotalSpins
	}

	return merged
}

// Exceeds reports whether any field of a is strictly greater than the
// corresponding field of b. Used to decide whether a merged snapshot
// should overwrite a locally displayed one: a local counter is never
// regressed, only advanced.
func Exceeds(a, b domain.LedgerSnapshot) bool {
	return a.TotalSpins > b.TotalSpins ||
		a.TotalWins > b.TotalWins ||
		a.TotalWinnings.GreaterThan(b.TotalWinnings) ||
		a.TotalPoints > b.TotalPoints
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func decimalMax(a, b domain.LedgerSnapshot) decimal.Decimal {
	if a.TotalWinnings.GreaterThan(b.TotalWinnings) {
		return a.TotalWinnings
	}
	return b.TotalWinnings
}
