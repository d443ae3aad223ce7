package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fortunaspin/fortuna/internal/chain"
	"github.com/fortunaspin/fortuna/internal/domain"
	"github.com/fortunaspin/fortuna/internal/logger"
	"github.com/fortunaspin/fortuna/internal/metrics"
)

// ClaimRequest asks for the pending balance of an address to be claimed
type ClaimRequest struct {
	WalletAddress string `json:"wallet_address" validate:"required,wallet"`
}

// BalanceResponse reports the claimable balance for an address
type BalanceResponse struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// ClaimResponse returns the submitted claim transaction
type ClaimResponse struct {
	Receipt *domain.ClaimReceipt `json:"receipt"`
}

// HandleGetClaimBalance handles GET requests for the claimable balance.
// The balance is advisory: lookup failures report zero.
func HandleGetClaimBalance(gateway chain.Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gateway == nil {
			respondError(w, http.StatusServiceUnavailable, ErrMsgClaimsDisabled)
			return
		}

		address := r.URL.Query().Get("address")
		if address == "" {
			respondError(w, http.StatusBadRequest, "address is required")
			return
		}

		balance := gateway.PendingBalance(r.Context(), address)

		respondJSON(w, http.StatusOK, BalanceResponse{
			Address: address,
			Balance: balance.String(),
		})
	}
}

// HandleClaim handles POST requests to claim pending winnings
func HandleClaim(gateway chain.Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gateway == nil {
			respondError(w, http.StatusServiceUnavailable, ErrMsgClaimsDisabled)
			return
		}

		log := logger.FromContext(r.Context())

		var req ClaimRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode claim request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid claim request", "error", err)
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		receipt, err := gateway.Claim(r.Context(), req.WalletAddress)
		if err != nil {
			log.Error("Claim failed", "error", err, "address", req.WalletAddress)
			metrics.ClaimsTotal.WithLabelValues("error").Inc()
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}
		metrics.ClaimsTotal.WithLabelValues("ok").Inc()

		log.Info("Claim submitted", "address", req.WalletAddress, "tx_hash", receipt.TxHash)

		respondJSON(w, http.StatusOK, ClaimResponse{Receipt: receipt})
	}
}
