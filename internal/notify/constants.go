package notify

import "time"

// Daily reminder content
const (
	ReminderTitle = "Your free spins are ready"
	ReminderBody  = "Come back and spin the wheel for a chance at USDC rewards!"
)

// Delivery batching: endpoints cap the number of tokens per request.
const MaxTokensPerRequest = 100

// DeliveryTimeout bounds one push request.
const DeliveryTimeout = 10 * time.Second

// Error message formats
const (
	ErrMsgTokenRequired    = "token and url are required"
	ErrMsgUserIDRequired   = "user id is required"
	ErrMsgSaveTokenFailed  = "failed to save notification token: %w"
	ErrMsgDisableFailed    = "failed to disable notification token: %w"
	ErrMsgListTokensFailed = "failed to list active tokens: %w"
	ErrMsgDeliveryFailed   = "notification delivery failed: %w"
	ErrMsgBadStatus        = "notification endpoint returned status %d"
)

// Log messages
const (
	LogMsgTokenSaved           = "Notification token saved"
	LogMsgTokenDisabled        = "Notification token disabled"
	LogMsgReminderStarting     = "Sending daily spin reminders"
	LogMsgReminderCompleted    = "Daily spin reminders sent"
	LogMsgReminderFailed       = "Daily spin reminder delivery failed"
	LogMsgDeadTokensDisabled   = "Disabled invalid notification tokens"
	LogMsgReminderStandby      = "Reminder worker in standby"
	LogMsgReminderApproach     = "Reminder scheduled"
	LogMsgReminderShutdown     = "Shutting down reminder worker"
	LogMsgReminderShutdownDone = "Reminder worker shutdown complete"
)
