package postgres

// Error message formats
const (
	ErrMsgQueryFailed  = "query failed: %w"
	ErrMsgScanFailed   = "failed to scan row: %w"
	ErrMsgUpsertFailed = "upsert failed: %w"
	ErrMsgInsertFailed = "insert failed: %w"
	ErrMsgBadDecimal   = "malformed numeric value %q: %w"
)
