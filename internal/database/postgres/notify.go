package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fortunaspin/fortuna/internal/domain"
	"github.com/fortunaspin/fortuna/internal/notify"
)

// NotifyRepository implements notify.Repository on PostgreSQL.
type NotifyRepository struct {
	db *pgxpool.Pool
}

// NewNotifyRepository creates a notification token repository backed by the
// given pool.
func NewNotifyRepository(db *pgxpool.Pool) notify.Repository {
	return &NotifyRepository{db: db}
}

func (r *NotifyRepository) SaveToken(ctx context.Context, token *domain.NotificationToken) error {
	const query = `
		INSERT INTO notification_tokens (token, user_id, fid, url, is_active, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (token) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			fid = EXCLUDED.fid,
			url = EXCLUDED.url,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		token.Token, token.UserID, token.FID, token.URL, token.IsActive, token.UpdatedAt)
	if err != nil {
		return fmt.Errorf(ErrMsgUpsertFailed, err)
	}
	return nil
}

func (r *NotifyRepository) DisableTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	const query = `
		UPDATE notification_tokens
		SET is_active = FALSE, updated_at = NOW()
		WHERE token = ANY($1)`

	if _, err := r.db.Exec(ctx, query, tokens); err != nil {
		return fmt.Errorf(ErrMsgQueryFailed, err)
	}
	return nil
}

func (r *NotifyRepository) DisableUser(ctx context.Context, userID string) error {
	const query = `
		UPDATE notification_tokens
		SET is_active = FALSE, updated_at = NOW()
		WHERE user_id = $1`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf(ErrMsgQueryFailed, err)
	}
	return nil
}

func (r *NotifyRepository) ListActiveTokens(ctx context.Context) ([]domain.NotificationToken, error) {
	const query = `
		SELECT token, user_id, fid, url, is_active, updated_at
		FROM notification_tokens
		WHERE is_active = TRUE`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, err)
	}
	defer rows.Close()

	var tokens []domain.NotificationToken
	for rows.Next() {
		var t domain.NotificationToken
		if err := rows.Scan(&t.Token, &t.UserID, &t.FID, &t.URL, &t.IsActive, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf(ErrMsgScanFailed, err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}
