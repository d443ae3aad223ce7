package ledger

import (
	"github.com/fortunaspin/fortuna/internal/domain"
)

// Apply folds one spin outcome into a ledger snapshot and returns the
// updated copy. Every spin increments the spin counter; wins additionally
// credit the win counter, winnings, and points. Loss outcomes never touch
// the reward fields, so winnings and points are monotonically
// non-decreasing and wins can never exceed spins.
func Apply(snapshot domain.LedgerSnapshot, outcome domain.SpinOutcome) domain.LedgerSnapshot {
	next := snapshot
	next.TotalSpins++

	if outcome.IsWin {
		next.TotalWins++
		next.TotalWinnings = snapshot.TotalWinnings.Add(outcome.Amount)
		next.TotalPoints += outcome.Points
	}

	return next
}
