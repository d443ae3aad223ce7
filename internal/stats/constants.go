package stats

// Query limits
const (
	DefaultHistoryLimit     = 20
	MaxHistoryLimit         = 100
	DefaultLeaderboardLimit = 50
	MaxLeaderboardLimit     = 100
)

// Error message formats
const (
	ErrMsgUserIDRequired     = "user id is required"
	ErrMsgGetStatsFailed     = "failed to get player stats: %w"
	ErrMsgUpsertStatsFailed  = "failed to upsert player stats: %w"
	ErrMsgRecordSpinFailed   = "failed to record spin history: %w"
	ErrMsgHistoryQueryFailed = "failed to query spin history: %w"
	ErrMsgLeaderboardFailed  = "failed to query leaderboard: %w"
)

// Log messages
const (
	LogMsgReconciled           = "Reconciled player stats"
	LogMsgInitializedRemote    = "Initialized remote stats from local snapshot"
	LogMsgSpinRecorded         = "Spin history entry recorded"
	LogMsgAnonymousSkip        = "Anonymous identity, skipping remote reconciliation"
	LogMsgClampedWins          = "Clamped merged wins to spins"
	LogMsgFailedToRecordSpin   = "Failed to record spin history"
	LogMsgFailedToUpdateRemote = "Failed to update remote stats"
)
