package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fortunaspin/fortuna/internal/domain"
	"github.com/fortunaspin/fortuna/internal/stats"
)

// StatsRepository implements stats.Repository on PostgreSQL.
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a stats repository backed by the given pool.
func NewStatsRepository(db *pgxpool.Pool) stats.Repository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) GetPlayerStats(ctx context.Context, userID string) (*domain.PlayerStats, error) {
	const query = `
		SELECT user_id, username, pfp_url,
		       total_spins, total_wins, total_usdc_won::text, total_points,
		       updated_at
		FROM user_stats
		WHERE user_id = $1`

	var (
		row      domain.PlayerStats
		winnings string
	)
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&row.UserID, &row.Username, &row.AvatarURL,
		&row.Snapshot.TotalSpins, &row.Snapshot.TotalWins, &winnings, &row.Snapshot.TotalPoints,
		&row.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, err)
	}

	row.Snapshot.TotalWinnings, err = parseDecimal(winnings)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *StatsRepository) UpsertPlayerStats(ctx context.Context, stats *domain.PlayerStats) error {
	const query = `
		INSERT INTO user_stats (user_id, username, pfp_url, total_spins, total_wins, total_usdc_won, total_points, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			pfp_url = EXCLUDED.pfp_url,
			total_spins = EXCLUDED.total_spins,
			total_wins = EXCLUDED.total_wins,
			total_usdc_won = EXCLUDED.total_usdc_won,
			total_points = EXCLUDED.total_points,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		stats.UserID, stats.Username, stats.AvatarURL,
		stats.Snapshot.TotalSpins, stats.Snapshot.TotalWins,
		stats.Snapshot.TotalWinnings.String(), stats.Snapshot.TotalPoints,
		stats.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf(ErrMsgUpsertFailed, err)
	}
	return nil
}

func (r *StatsRepository) InsertSpinHistory(ctx context.Context, entry *domain.SpinHistoryEntry) error {
	const query = `
		INSERT INTO spin_history (user_id, result_type, amount, segment_name, points_earned, created_at)
		VALUES ($1, $2, $3::numeric, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		entry.UserID, entry.ResultType, entry.Amount.String(),
		entry.SegmentName, entry.PointsEarned, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf(ErrMsgInsertFailed, err)
	}
	return nil
}

func (r *StatsRepository) GetSpinHistory(ctx context.Context, userID string, limit int) ([]domain.SpinHistoryEntry, error) {
	const query = `
		SELECT id, user_id, result_type, amount::text, segment_name, points_earned, created_at
		FROM spin_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, err)
	}
	defer rows.Close()

	var entries []domain.SpinHistoryEntry
	for rows.Next() {
		var (
			entry  domain.SpinHistoryEntry
			amount string
		)
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.ResultType, &amount,
			&entry.SegmentName, &entry.PointsEarned, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf(ErrMsgScanFailed, err)
		}
		entry.Amount, err = parseDecimal(amount)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *StatsRepository) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	const query = `
		SELECT user_id, username, pfp_url, total_usdc_won::text, total_spins, total_points
		FROM user_stats
		ORDER BY total_usdc_won DESC, total_spins DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var (
			entry    domain.LeaderboardEntry
			winnings string
		)
		if err := rows.Scan(&entry.UserID, &entry.Username, &entry.AvatarURL,
			&winnings, &entry.TotalSpins, &entry.TotalPoints); err != nil {
			return nil, fmt.Errorf(ErrMsgScanFailed, err)
		}
		entry.TotalWinnings, err = parseDecimal(winnings)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf(ErrMsgBadDecimal, s, err)
	}
	return d, nil
}
