package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Spin errors
	ErrMsgSpinInFlight   = "a spin is already in progress"
	ErrMsgSpinCapReached = "daily spin limit reached"
	ErrMsgEmptyWheel     = "wheel has no segments"

	// Identity errors
	ErrMsgNoIdentity = "no identity available"
	ErrMsgNoWallet   = "no wallet connected"

	// Chain errors
	ErrMsgTransactionFailed = "spin transaction failed"
	ErrMsgClaimFailed       = "claim failed"

	// Persistence errors
	ErrMsgPersistenceFailed = "failed to persist spin result"
	ErrMsgSyncFailed        = "stats sync failed"

	// Lookup errors
	ErrMsgUserNotFound = "user not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Spin errors
	ErrSpinInFlight   = errors.New(ErrMsgSpinInFlight)
	ErrSpinCapReached = errors.New(ErrMsgSpinCapReached)
	ErrEmptyWheel     = errors.New(ErrMsgEmptyWheel)

	// Identity errors
	ErrNoIdentity = errors.New(ErrMsgNoIdentity)
	ErrNoWallet   = errors.New(ErrMsgNoWallet)

	// Chain errors
	ErrTransactionFailed = errors.New(ErrMsgTransactionFailed)
	ErrClaimFailed       = errors.New(ErrMsgClaimFailed)

	// Persistence errors
	ErrPersistenceFailed = errors.New(ErrMsgPersistenceFailed)
	ErrSyncFailed        = errors.New(ErrMsgSyncFailed)

	// Lookup errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
