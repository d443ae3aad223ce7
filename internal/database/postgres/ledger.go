package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fortunaspin/fortuna/internal/domain"
)

// LedgerStore implements ledger.Store on PostgreSQL.
type LedgerStore struct {
	db *pgxpool.Pool
}

// NewLedgerStore creates a ledger store backed by the given pool. The
// concrete type is returned because ResetStaleDailyCounts sits outside
// the ledger.Store interface.
func NewLedgerStore(db *pgxpool.Pool) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) Load(ctx context.Context, playerID string) (domain.LedgerSnapshot, error) {
	const query = `
		SELECT total_spins, total_wins, total_winnings::text, total_points
		FROM player_ledger
		WHERE player_id = $1`

	snapshot := domain.NewLedgerSnapshot()
	var winnings string
	err := s.db.QueryRow(ctx, query, playerID).Scan(
		&snapshot.TotalSpins, &snapshot.TotalWins, &winnings, &snapshot.TotalPoints)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewLedgerSnapshot(), nil
	}
	if err != nil {
		return domain.NewLedgerSnapshot(), fmt.Errorf(ErrMsgQueryFailed, err)
	}

	snapshot.TotalWinnings, err = parseDecimal(winnings)
	if err != nil {
		return domain.NewLedgerSnapshot(), err
	}
	return snapshot, nil
}

func (s *LedgerStore) Save(ctx context.Context, playerID string, snapshot domain.LedgerSnapshot) error {
	const query = `
		INSERT INTO player_ledger (player_id, total_spins, total_wins, total_winnings, total_points, updated_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6)
		ON CONFLICT (player_id) DO UPDATE SET
			total_spins = EXCLUDED.total_spins,
			total_wins = EXCLUDED.total_wins,
			total_winnings = EXCLUDED.total_winnings,
			total_points = EXCLUDED.total_points,
			updated_at = EXCLUDED.updated_at`

	_, err := s.db.Exec(ctx, query,
		playerID, snapshot.TotalSpins, snapshot.TotalWins,
		snapshot.TotalWinnings.String(), snapshot.TotalPoints, time.Now().UTC())
	if err != nil {
		return fmt.Errorf(ErrMsgUpsertFailed, err)
	}
	return nil
}

func (s *LedgerStore) DailyCount(ctx context.Context, playerID string) (string, int, error) {
	const query = `
		SELECT daily_date, daily_count
		FROM player_ledger
		WHERE player_id = $1`

	var (
		date  string
		count int
	)
	err := s.db.QueryRow(ctx, query, playerID).Scan(&date, &count)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", 0, nil
	}
	if err != nil {
		return "", 0, fmt.Errorf(ErrMsgQueryFailed, err)
	}
	return date, count, nil
}

func (s *LedgerStore) SetDailyCount(ctx context.Context, playerID, date string, count int) error {
	const query = `
		INSERT INTO player_ledger (player_id, daily_date, daily_count, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (player_id) DO UPDATE SET
			daily_date = EXCLUDED.daily_date,
			daily_count = EXCLUDED.daily_count,
			updated_at = EXCLUDED.updated_at`

	_, err := s.db.Exec(ctx, query, playerID, date, count, time.Now().UTC())
	if err != nil {
		return fmt.Errorf(ErrMsgUpsertFailed, err)
	}
	return nil
}

// ResetStaleDailyCounts zeroes every counter written for a different date
// than the one given. Used by the daily reset worker.
func (s *LedgerStore) ResetStaleDailyCounts(ctx context.Context, date string) (int64, error) {
	const query = `
		UPDATE player_ledger
		SET daily_count = 0, daily_date = $1
		WHERE daily_date <> $1 AND daily_count > 0`

	tag, err := s.db.Exec(ctx, query, date)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgQueryFailed, err)
	}
	return tag.RowsAffected(), nil
}
