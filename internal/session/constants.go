package session

// Error message formats
const (
	ErrMsgLoadLedgerFailed = "failed to load daily spin count: %w"
	ErrMsgSpinFailed       = "spin failed: %w"
	ErrMsgCommitFailed     = "chain commit failed: %w"
)

// Log messages
const (
	LogMsgSpinStarted         = "Spin session started"
	LogMsgSpinResolved        = "Spin resolved"
	LogMsgSpinInFlight        = "Rejected overlapping spin for identity"
	LogMsgLedgerLoadFailed    = "Failed to load local ledger, aborting spin"
	LogMsgDailyCountFailed    = "Failed to record daily spin count"
	LogMsgReconcileFailed     = "Best-effort reconcile failed"
	LogMsgMergeAdopted        = "Adopted merged snapshot from remote"
	LogMsgMergeSaveFailed     = "Failed to store merged snapshot locally"
	LogMsgHistoryRecordFailed = "Best-effort history record failed"
	LogMsgShutdownStarted     = "Session service shutting down, draining settlements"
	LogMsgShutdownComplete    = "Session service shutdown complete"
	LogMsgShutdownTimeout     = "Session service shutdown timed out"
	LogMsgSettleSkipped       = "Settlement skipped, service shutting down"
)
