package worker

// Log messages for daily reset worker operations
const (
	LogMsgDailyResetStandby   = "Daily reset standby scheduled"
	LogMsgDailyResetApproach  = "Daily reset scheduled"
	LogMsgDailyResetStarting  = "Daily reset starting"
	LogMsgDailyResetCompleted = "Daily reset completed"
	LogMsgDailyResetFailed    = "Daily reset failed"
	LogMsgDailyResetShutdown  = "Shutting down daily reset worker"
	LogMsgDailyResetCancelled = "Cancelled pending daily reset"
)
