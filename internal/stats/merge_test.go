package stats

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fortunaspin/fortuna/internal/domain"
)

func snapshot(spins, wins int64, winnings string, points int64) domain.LedgerSnapshot {
	return domain.LedgerSnapshot{
		TotalSpins:    spins,
		TotalWins:     wins,
		TotalWinnings: decimal.RequireFromString(winnings),
		TotalPoints:   points,
	}
}

func TestMergeSnapshotsFieldWiseMax(t *testing.T) {
	local := snapshot(10, 3, "0.05", 50)
	remote := snapshot(7, 5, "0.08", 80)

	merged := MergeSnapshots(local, remote)

	assert.Equal(t, int64(10), merged.TotalSpins)
	assert.Equal(t, int64(5), merged.TotalWins)
	assert.True(t, merged.TotalWinnings.Equal(decimal.RequireFromString("0.08")))
	assert.Equal(t, int64(80), merged.TotalPoints)
}

func TestMergeSnapshotsIdempotent(t *testing.T) {
	s := snapshot(12, 4, "0.11", 110)

	merged := MergeSnapshots(s, s)

	assert.True(t, merged.Equal(s))
}

func TestMergeSnapshotsCommutative(t *testing.T) {
	a := snapshot(3, 1, "0.02", 20)
	b := snapshot(9, 2, "0.01", 35)

	ab := MergeSnapshots(a, b)
	ba := MergeSnapshots(b, a)

	assert.True(t, ab.Equal(ba))
}

func TestMergeSnapshotsClampsWinsToSpins(t *testing.T) {
	a := snapshot(2, 2, "0.02", 20)
	b := snapshot(1, 1, "0.01", 10)
	b.TotalWins = 5

	merged := MergeSnapshots(a, b)

	assert.Equal(t, int64(2), merged.TotalSpins)
	assert.Equal(t, int64(2), merged.TotalWins)
}

func TestMergeSnapshotsZeroValue(t *testing.T) {
	s := snapshot(4, 2, "0.03", 30)

	merged := MergeSnapshots(s, domain.NewLedgerSnapshot())

	assert.True(t, merged.Equal(s))
}

func TestExceeds(t *testing.T) {
	base := snapshot(5, 2, "0.03", 30)

	assert.False(t, Exceeds(base, base))
	assert.True(t, Exceeds(snapshot(6, 2, "0.03", 30), base))
	assert.True(t, Exceeds(snapshot(5, 2, "0.04", 30), base))
	assert.False(t, Exceeds(snapshot(4, 1, "0.01", 10), base))
}
