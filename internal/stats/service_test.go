package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortunaspin/fortuna/internal/domain"
)

type mockRepository struct {
	getStatsFunc      func(ctx context.Context, userID string) (*domain.PlayerStats, error)
	upsertStatsFunc   func(ctx context.Context, stats *domain.PlayerStats) error
	insertHistoryFunc func(ctx context.Context, entry *domain.SpinHistoryEntry) error
	getHistoryFunc    func(ctx context.Context, userID string, limit int) ([]domain.SpinHistoryEntry, error)
	leaderboardFunc   func(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

func (m *mockRepository) GetPlayerStats(ctx context.Context, userID string) (*domain.PlayerStats, error) {
	if m.getStatsFunc != nil {
		return m.getStatsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockRepository) UpsertPlayerStats(ctx context.Context, stats *domain.PlayerStats) error {
	if m.upsertStatsFunc != nil {
		return m.upsertStatsFunc(ctx, stats)
	}
	return nil
}

func (m *mockRepository) InsertSpinHistory(ctx context.Context, entry *domain.SpinHistoryEntry) error {
	if m.insertHistoryFunc != nil {
		return m.insertHistoryFunc(ctx, entry)
	}
	return nil
}

func (m *mockRepository) GetSpinHistory(ctx context.Context, userID string, limit int) ([]domain.SpinHistoryEntry, error) {
	if m.getHistoryFunc != nil {
		return m.getHistoryFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockRepository) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if m.leaderboardFunc != nil {
		return m.leaderboardFunc(ctx, limit)
	}
	return nil, nil
}

func fidIdentity(fid int64) domain.Identity {
	return domain.Identity{FID: fid, Username: "player", AvatarURL: "https://example.com/a.png"}
}

func TestReconcileMergesWithRemote(t *testing.T) {
	var upserted *domain.PlayerStats
	repo := &mockRepository{
		getStatsFunc: func(_ context.Context, userID string) (*domain.PlayerStats, error) {
			return &domain.PlayerStats{
				UserID:   userID,
				Username: "old-name",
				Snapshot: snapshot(7, 5, "0.08", 80),
			}, nil
		},
		upsertStatsFunc: func(_ context.Context, stats *domain.PlayerStats) error {
			upserted = stats
			return nil
		},
	}
	svc := NewService(repo)

	merged, err := svc.Reconcile(context.Background(), fidIdentity(42), snapshot(10, 3, "0.05", 50))

	require.NoError(t, err)
	assert.Equal(t, int64(10), merged.TotalSpins)
	assert.Equal(t, int64(5), merged.TotalWins)
	assert.True(t, merged.TotalWinnings.Equal(decimal.RequireFromString("0.08")))
	require.NotNil(t, upserted)
	assert.Equal(t, "fid:42", upserted.UserID)
	assert.Equal(t, "player", upserted.Username)
	assert.True(t, upserted.Snapshot.Equal(merged))
}

func TestReconcileInitializesFromLocalWhenRemoteAbsent(t *testing.T) {
	var upserted *domain.PlayerStats
	repo := &mockRepository{
		upsertStatsFunc: func(_ context.Context, stats *domain.PlayerStats) error {
			upserted = stats
			return nil
		},
	}
	svc := NewService(repo)
	local := snapshot(3, 1, "0.01", 10)

	merged, err := svc.Reconcile(context.Background(), fidIdentity(7), local)

	require.NoError(t, err)
	assert.True(t, merged.Equal(local))
	require.NotNil(t, upserted)
	assert.True(t, upserted.Snapshot.Equal(local))
}

func TestReconcileAnonymousIsLocalOnly(t *testing.T) {
	repo := &mockRepository{
		getStatsFunc: func(_ context.Context, _ string) (*domain.PlayerStats, error) {
			t.Fatal("remote store must not be touched for anonymous identities")
			return nil, nil
		},
	}
	svc := NewService(repo)
	local := snapshot(5, 2, "0.02", 20)

	merged, err := svc.Reconcile(context.Background(), domain.Identity{}, local)

	require.NoError(t, err)
	assert.True(t, merged.Equal(local))
}

func TestReconcileWalletIdentityUsesAddressKey(t *testing.T) {
	var upserted *domain.PlayerStats
	repo := &mockRepository{
		upsertStatsFunc: func(_ context.Context, stats *domain.PlayerStats) error {
			upserted = stats
			return nil
		},
	}
	svc := NewService(repo)
	identity := domain.Identity{WalletAddress: "0xabc123"}

	_, err := svc.Reconcile(context.Background(), identity, snapshot(1, 0, "0", 0))

	require.NoError(t, err)
	require.NotNil(t, upserted)
	assert.Equal(t, "0xabc123", upserted.UserID)
}

func TestReconcileFIDTakesPrecedenceOverWallet(t *testing.T) {
	var upserted *domain.PlayerStats
	repo := &mockRepository{
		upsertStatsFunc: func(_ context.Context, stats *domain.PlayerStats) error {
			upserted = stats
			return nil
		},
	}
	svc := NewService(repo)
	identity := domain.Identity{FID: 9, WalletAddress: "0xabc123"}

	_, err := svc.Reconcile(context.Background(), identity, snapshot(1, 0, "0", 0))

	require.NoError(t, err)
	require.NotNil(t, upserted)
	assert.Equal(t, "fid:9", upserted.UserID)
}

func TestReconcileReturnsLocalOnRemoteFailure(t *testing.T) {
	repo := &mockRepository{
		getStatsFunc: func(_ context.Context, _ string) (*domain.PlayerStats, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewService(repo)
	local := snapshot(6, 3, "0.04", 40)

	merged, err := svc.Reconcile(context.Background(), fidIdentity(1), local)

	assert.ErrorIs(t, err, domain.ErrSyncFailed)
	assert.True(t, merged.Equal(local))
}

func TestReconcileKeepsRemoteUsernameWhenLocalEmpty(t *testing.T) {
	var upserted *domain.PlayerStats
	repo := &mockRepository{
		getStatsFunc: func(_ context.Context, userID string) (*domain.PlayerStats, error) {
			return &domain.PlayerStats{UserID: userID, Username: "kept", Snapshot: domain.NewLedgerSnapshot()}, nil
		},
		upsertStatsFunc: func(_ context.Context, stats *domain.PlayerStats) error {
			upserted = stats
			return nil
		},
	}
	svc := NewService(repo)

	_, err := svc.Reconcile(context.Background(), domain.Identity{FID: 3}, snapshot(1, 0, "0", 0))

	require.NoError(t, err)
	require.NotNil(t, upserted)
	assert.Equal(t, "kept", upserted.Username)
}

func TestRecordSpinWin(t *testing.T) {
	var inserted *domain.SpinHistoryEntry
	repo := &mockRepository{
		insertHistoryFunc: func(_ context.Context, entry *domain.SpinHistoryEntry) error {
			inserted = entry
			return nil
		},
	}
	svc := NewService(repo)
	outcome := domain.SpinOutcome{
		Segment: domain.Segment{Name: "0.01 USDC", Value: decimal.RequireFromString("0.01")},
		IsWin:   true,
		Amount:  decimal.RequireFromString("0.01"),
		Points:  10,
	}

	err := svc.RecordSpin(context.Background(), fidIdentity(42), outcome)

	require.NoError(t, err)
	require.NotNil(t, inserted)
	assert.Equal(t, domain.ResultTypeWin, inserted.ResultType)
	assert.Equal(t, "0.01 USDC", inserted.SegmentName)
	assert.Equal(t, int64(10), inserted.PointsEarned)
}

func TestRecordSpinLoss(t *testing.T) {
	var inserted *domain.SpinHistoryEntry
	repo := &mockRepository{
		insertHistoryFunc: func(_ context.Context, entry *domain.SpinHistoryEntry) error {
			inserted = entry
			return nil
		},
	}
	svc := NewService(repo)
	outcome := domain.SpinOutcome{
		Segment: domain.Segment{Name: "X", IsLoss: true},
		IsWin:   false,
	}

	err := svc.RecordSpin(context.Background(), fidIdentity(42), outcome)

	require.NoError(t, err)
	require.NotNil(t, inserted)
	assert.Equal(t, domain.ResultTypeLoss, inserted.ResultType)
	assert.Equal(t, int64(0), inserted.PointsEarned)
}

func TestRecordSpinAnonymousNoOp(t *testing.T) {
	repo := &mockRepository{
		insertHistoryFunc: func(_ context.Context, _ *domain.SpinHistoryEntry) error {
			t.Fatal("history must not be written for anonymous identities")
			return nil
		},
	}
	svc := NewService(repo)

	err := svc.RecordSpin(context.Background(), domain.Identity{}, domain.SpinOutcome{})

	assert.NoError(t, err)
}

func TestRecordSpinFailureIsIsolated(t *testing.T) {
	repo := &mockRepository{
		insertHistoryFunc: func(_ context.Context, _ *domain.SpinHistoryEntry) error {
			return errors.New("insert failed")
		},
	}
	svc := NewService(repo)

	err := svc.RecordSpin(context.Background(), fidIdentity(1), domain.SpinOutcome{})

	assert.Error(t, err)
}

func TestGetPlayerStatsNotFound(t *testing.T) {
	svc := NewService(&mockRepository{})

	_, err := svc.GetPlayerStats(context.Background(), "fid:404")

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetSpinHistoryClampsLimit(t *testing.T) {
	var gotLimit int
	repo := &mockRepository{
		getHistoryFunc: func(_ context.Context, _ string, limit int) ([]domain.SpinHistoryEntry, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.GetSpinHistory(context.Background(), "fid:1", 500)

	require.NoError(t, err)
	assert.Equal(t, MaxHistoryLimit, gotLimit)
}

func TestGetSpinHistoryDefaultLimit(t *testing.T) {
	var gotLimit int
	repo := &mockRepository{
		getHistoryFunc: func(_ context.Context, _ string, limit int) ([]domain.SpinHistoryEntry, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.GetSpinHistory(context.Background(), "fid:1", 0)

	require.NoError(t, err)
	assert.Equal(t, DefaultHistoryLimit, gotLimit)
}

func TestGetLeaderboardAssignsRanks(t *testing.T) {
	repo := &mockRepository{
		leaderboardFunc: func(_ context.Context, _ int) ([]domain.LeaderboardEntry, error) {
			return []domain.LeaderboardEntry{
				{UserID: "fid:1"},
				{UserID: "fid:2"},
				{UserID: "fid:3"},
			}, nil
		},
	}
	svc := NewService(repo)

	entries, err := svc.GetLeaderboard(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 3, entries[2].Rank)
}
