package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fortunaspin/fortuna/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	ErrMsgSpinInFlightError = "A spin is already in progress"
	ErrMsgSpinCapError      = "No spins left today. Come back tomorrow!"
	ErrMsgTxFailedError     = "Transaction failed. Your spin was not charged."
	ErrMsgClaimFailedError  = "Claim failed. Your winnings are still claimable."
	ErrMsgClaimsDisabled    = "On-chain claims are not available"
	ErrMsgNoWalletError     = "Connect a wallet first"
	ErrMsgUserNotFoundError = "User not found"
	ErrMsgPersistenceError  = "Could not save your result. Please try again."
	ErrMsgSyncFailedError   = "Could not sync your stats. Your local progress is safe."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrSpinInFlight):
		return http.StatusConflict, ErrMsgSpinInFlightError
	case errors.Is(err, domain.ErrSpinCapReached):
		return http.StatusTooManyRequests, ErrMsgSpinCapError
	case errors.Is(err, domain.ErrTransactionFailed):
		return http.StatusPaymentRequired, ErrMsgTxFailedError
	case errors.Is(err, domain.ErrClaimFailed):
		return http.StatusBadGateway, ErrMsgClaimFailedError
	case errors.Is(err, domain.ErrNoWallet):
		return http.StatusBadRequest, ErrMsgNoWalletError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrPersistenceFailed):
		return http.StatusInternalServerError, ErrMsgPersistenceError
	case errors.Is(err, domain.ErrSyncFailed):
		return http.StatusBadGateway, ErrMsgSyncFailedError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
