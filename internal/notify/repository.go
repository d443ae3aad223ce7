package notify

import (
	"context"

	"github.com/fortunaspin/fortuna/internal/domain"
)

// Repository persists notification token registrations.
type Repository interface {
	// SaveToken inserts or reactivates a token registration.
	SaveToken(ctx context.Context, token *domain.NotificationToken) error

	// DisableTokens marks the given tokens inactive. Unknown tokens are
	// ignored.
	DisableTokens(ctx context.Context, tokens []string) error

	// DisableUser marks every token for the user inactive.
	DisableUser(ctx context.Context, userID string) error

	// ListActiveTokens returns all active registrations.
	ListActiveTokens(ctx context.Context) ([]domain.NotificationToken, error)
}
