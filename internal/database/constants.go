package database

// Connection pool settings
const (
	DefaultMinConnections = 2
)

// Error message formats
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgMigrationFailed         = "failed to run migrations: %w"
)

// Log messages
const (
	LogMsgConnected       = "Successfully connected to the database"
	LogMsgMigrationsArmed = "Running database migrations"
	LogMsgMigrationsDone  = "Database migrations up to date"
)
