package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fortunaspin/fortuna/internal/domain"
	"github.com/fortunaspin/fortuna/internal/logger"
)

// Service defines the interface for stats reconciliation and history
type Service interface {
	// Reconcile merges a local ledger snapshot with the remote row for the
	// identity using the field-wise maximum policy and writes the merged
	// result back to the remote store. Anonymous identities reconcile to
	// the local snapshot unchanged (local-only operation).
	Reconcile(ctx context.Context, identity domain.Identity, local domain.LedgerSnapshot) (domain.LedgerSnapshot, error)

	// RecordSpin appends one immutable history entry for a completed spin.
	// Independent of the aggregate: errors here never imply aggregate state.
	RecordSpin(ctx context.Context, identity domain.Identity, outcome domain.SpinOutcome) error

	GetPlayerStats(ctx context.Context, userID string) (*domain.PlayerStats, error)
	GetSpinHistory(ctx context.Context, userID string, limit int) ([]domain.SpinHistoryEntry, error)
	GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

// service implements the Service interface
type service struct {
	repo Repository
}

// NewService creates a new stats service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Reconcile merges local state with the remote row and upserts the result.
func (s *service) Reconcile(ctx context.Context, identity domain.Identity, local domain.LedgerSnapshot) (domain.LedgerSnapshot, error) {
	log := logger.FromContext(ctx)

	userID := identity.Key()
	if userID == "" {
		log.Debug(LogMsgAnonymousSkip)
		return local, nil
	}

	remote, err := s.repo.GetPlayerStats(ctx, userID)
	if err != nil {
		return local, errors.Join(domain.ErrSyncFailed, fmt.Errorf(ErrMsgGetStatsFailed, err))
	}

	merged := local
	username := identity.Username
	avatarURL := identity.AvatarURL

	if remote != nil {
		merged = MergeSnapshots(local, remote.Snapshot)
		// Identity metadata takes the most recently supplied non-empty value
		if username == "" {
			username = remote.Username
		}
		if avatarURL == "" {
			avatarURL = remote.AvatarURL
		}
		if merged.TotalWins < maxInt64(local.TotalWins, remote.Snapshot.TotalWins) {
			log.Debug(LogMsgClampedWins, "user_id", userID)
		}
	} else {
		log.Info(LogMsgInitializedRemote, "user_id", userID)
	}

	row := &domain.PlayerStats{
		UserID:    userID,
		Username:  username,
		AvatarURL: avatarURL,
		Snapshot:  merged,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.UpsertPlayerStats(ctx, row); err != nil {
		return local, errors.Join(domain.ErrSyncFailed, fmt.Errorf(ErrMsgUpsertStatsFailed, err))
	}

	log.Debug(LogMsgReconciled, "user_id", userID,
		"total_spins", merged.TotalSpins, "total_wins", merged.TotalWins)

	return merged, nil
}

// RecordSpin appends one history entry for a completed spin.
func (s *service) RecordSpin(ctx context.Context, identity domain.Identity, outcome domain.SpinOutcome) error {
	log := logger.FromContext(ctx)

	userID := identity.Key()
	if userID == "" {
		log.Debug(LogMsgAnonymousSkip)
		return nil
	}

	resultType := domain.ResultTypeLoss
	if outcome.IsWin {
		resultType = domain.ResultTypeWin
	}

	entry := &domain.SpinHistoryEntry{
		UserID:       userID,
		ResultType:   resultType,
		Amount:       outcome.Amount,
		SegmentName:  outcome.Segment.Name,
		PointsEarned: outcome.Points,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.InsertSpinHistory(ctx, entry); err != nil {
		log.Error(LogMsgFailedToRecordSpin, "error", err, "user_id", userID)
		return fmt.Errorf(ErrMsgRecordSpinFailed, err)
	}

	log.Debug(LogMsgSpinRecorded, "user_id", userID, "result", resultType)
	return nil
}

// GetPlayerStats returns the remote aggregate row for one user.
func (s *service) GetPlayerStats(ctx context.Context, userID string) (*domain.PlayerStats, error) {
	if userID == "" {
		return nil, errors.New(ErrMsgUserIDRequired)
	}

	row, err := s.repo.GetPlayerStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetStatsFailed, err)
	}
	if row == nil {
		return nil, domain.ErrUserNotFound
	}
	return row, nil
}

// GetSpinHistory returns recent spins for one user, newest first.
func (s *service) GetSpinHistory(ctx context.Context, userID string, limit int) ([]domain.SpinHistoryEntry, error) {
	if userID == "" {
		return nil, errors.New(ErrMsgUserIDRequired)
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	entries, err := s.repo.GetSpinHistory(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgHistoryQueryFailed, err)
	}
	return entries, nil
}

// GetLeaderboard returns the top players by winnings, then spins.
func (s *service) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	entries, err := s.repo.GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLeaderboardFailed, err)
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
