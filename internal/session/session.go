package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/fortunaspin/fortuna/internal/chain"
	"github.com/fortunaspin/fortuna/internal/domain"
	"github.com/fortunaspin/fortuna/internal/ledger"
	"github.com/fortunaspin/fortuna/internal/logger"
	"github.com/fortunaspin/fortuna/internal/stats"
	"github.com/fortunaspin/fortuna/internal/wheel"
)

// State identifies the phase of a spin session.
type State int

const (
	StateIdle State = iota
	StateAuthorizing
	StateCommitting
	StateResolving
	StateSettling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAuthorizing:
		return "authorizing"
	case StateCommitting:
		return "committing"
	case StateResolving:
		return "resolving"
	case StateSettling:
		return "settling"
	}
	return "unknown"
}

// SpinRequest carries everything needed to run one spin session.
type SpinRequest struct {
	Identity domain.Identity
	// DeviceID keys the local ledger when the identity is anonymous.
	DeviceID string
}

// SpinResult is the settled outcome of one spin session.
type SpinResult struct {
	Outcome  domain.SpinOutcome    `json:"outcome"`
	Snapshot domain.LedgerSnapshot `json:"snapshot"`
	Receipt  *domain.SpinReceipt   `json:"receipt,omitempty"`
}

// Service runs spin sessions end to end.
type Service interface {
	Spin(ctx context.Context, req SpinRequest) (*SpinResult, error)
	Shutdown(ctx context.Context) error
}

type service struct {
	wheel        domain.Wheel
	selector     *wheel.Selector
	store        ledger.Store
	statsService stats.Service
	gateway      chain.Gateway
	policy       Policy
	chainEnabled bool

	inflight *inFlight
	wg       sync.WaitGroup
	shutdown chan struct{}
}

// NewService creates a session service. gateway may be nil when chain
// commits are disabled.
func NewService(
	w domain.Wheel,
	selector *wheel.Selector,
	store ledger.Store,
	statsService stats.Service,
	gateway chain.Gateway,
	policy Policy,
	chainEnabled bool,
) Service {
	if policy == nil {
		policy = UnlimitedPolicy{}
	}
	return &service{
		wheel:        w,
		selector:     selector,
		store:        store,
		statsService: statsService,
		gateway:      gateway,
		policy:       policy,
		chainEnabled: chainEnabled && gateway != nil,
		inflight:     newInFlight(),
		shutdown:     make(chan struct{}),
	}
}

// Spin walks one session through authorize, optional chain commit, outcome
// resolution, and settlement. Any failure before the outcome is drawn
// aborts with no state change. Once the outcome exists, the local ledger
// write is the source of truth; remote settlement is best effort.
func (s *service) Spin(ctx context.Context, req SpinRequest) (*SpinResult, error) {
	log := logger.FromContext(ctx)

	playerID := req.Identity.Key()
	if playerID == "" {
		playerID = req.DeviceID
	}
	if playerID == "" {
		playerID = uuid.NewString()
	}

	if !s.inflight.TryAcquire(playerID) {
		log.Warn(LogMsgSpinInFlight, "player_id", playerID)
		return nil, domain.ErrSpinInFlight
	}
	defer s.inflight.Release(playerID)

	log.Debug(LogMsgSpinStarted, "player_id", playerID, "state", StateAuthorizing.String())

	if err := s.policy.Authorize(ctx, playerID); err != nil {
		return nil, err
	}

	// The snapshot is loaded before any money moves. The store reports a
	// missing row as a zero snapshot, so an error here is never a new
	// player; aborting keeps the durable counters intact.
	snapshot, err := s.store.Load(ctx, playerID)
	if err != nil {
		log.Error(LogMsgLedgerLoadFailed, "error", err, "player_id", playerID)
		return nil, errors.Join(domain.ErrPersistenceFailed, err)
	}

	var receipt *domain.SpinReceipt
	if s.chainEnabled && req.Identity.HasWallet() {
		r, err := s.gateway.CommitSpin(ctx, req.Identity.WalletAddress)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgCommitFailed, err)
		}
		receipt = r
	}

	outcome, err := s.selector.Spin(s.wheel)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgSpinFailed, err)
	}

	// Outcome is now fixed. The local ledger write makes it final.
	snapshot = ledger.Apply(snapshot, outcome)

	if err := s.store.Save(ctx, playerID, snapshot); err != nil {
		return nil, errors.Join(domain.ErrPersistenceFailed, err)
	}

	if err := s.policy.Record(ctx, playerID); err != nil {
		log.Warn(LogMsgDailyCountFailed, "error", err, "player_id", playerID)
	}

	log.Info(LogMsgSpinResolved,
		"player_id", playerID,
		"segment", outcome.Segment.Name,
		"is_win", outcome.IsWin,
		"total_spins", snapshot.TotalSpins)

	s.settleAsync(ctx, req.Identity, playerID, outcome, snapshot)

	return &SpinResult{Outcome: outcome, Snapshot: snapshot, Receipt: receipt}, nil
}

// settleAsync pushes the outcome to the remote stats store without holding
// up the response. Failures are logged and never unwind the local ledger.
// When the merge brings back progress from another device, the merged
// snapshot is adopted locally; a local counter only ever advances.
func (s *service) settleAsync(ctx context.Context, identity domain.Identity, playerID string, outcome domain.SpinOutcome, snapshot domain.LedgerSnapshot) {
	if identity.IsAnonymous() {
		return
	}

	log := logger.FromContext(ctx)

	select {
	case <-s.shutdown:
		log.Warn(LogMsgSettleSkipped)
		return
	default:
	}

	settleCtx := context.Background()
	if requestID, ok := logger.RequestIDFromContext(ctx); ok {
		settleCtx = logger.WithRequestID(settleCtx, requestID)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		merged, err := s.statsService.Reconcile(settleCtx, identity, snapshot)
		if err != nil {
			log.Error(LogMsgReconcileFailed, "error", err, "user_id", identity.Key())
		} else if stats.Exceeds(merged, snapshot) {
			if err := s.store.Save(settleCtx, playerID, merged); err != nil {
				log.Error(LogMsgMergeSaveFailed, "error", err, "player_id", playerID)
			} else {
				log.Info(LogMsgMergeAdopted, "player_id", playerID,
					"total_spins", merged.TotalSpins)
			}
		}
		if err := s.statsService.RecordSpin(settleCtx, identity, outcome); err != nil {
			log.Error(LogMsgHistoryRecordFailed, "error", err, "user_id", identity.Key())
		}
	}()
}

// Shutdown waits for in-flight settlements to finish or the context to
// expire.
func (s *service) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgShutdownStarted)

	select {
	case <-s.shutdown:
	default:
		close(s.shutdown)
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgShutdownComplete)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
