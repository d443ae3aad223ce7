package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/fortunaspin/fortuna/internal/domain"
	"github.com/fortunaspin/fortuna/internal/logger"
	"github.com/fortunaspin/fortuna/internal/metrics"
	"github.com/fortunaspin/fortuna/internal/stats"
)

// SyncStatsRequest carries a client's local counters for reconciliation
type SyncStatsRequest struct {
	FID           int64  `json:"fid" validate:"min=0"`
	WalletAddress string `json:"wallet_address" validate:"wallet"`
	Username      string `json:"username" validate:"max=100,excludesall=\x00\n\r\t"`
	AvatarURL     string `json:"pfp_url" validate:"omitempty,url,max=500"`

	TotalSpins    int64  `json:"total_spins" validate:"min=0"`
	TotalWins     int64  `json:"total_wins" validate:"min=0"`
	TotalWinnings string `json:"total_winnings"`
	TotalPoints   int64  `json:"total_points" validate:"min=0"`
}

// SyncStatsResponse returns the merged counters
type SyncStatsResponse struct {
	Merged domain.LedgerSnapshot `json:"merged"`
}

// HandleSyncStats handles POST requests to reconcile local counters with
// the remote store.
func HandleSyncStats(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SyncStatsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode sync request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid sync request", "error", err)
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		winnings := decimal.Zero
		if req.TotalWinnings != "" {
			parsed, err := decimal.NewFromString(req.TotalWinnings)
			if err != nil || parsed.IsNegative() {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
				return
			}
			winnings = parsed
		}

		identity := domain.Identity{
			FID:           req.FID,
			WalletAddress: req.WalletAddress,
			Username:      req.Username,
			AvatarURL:     req.AvatarURL,
		}
		local := domain.LedgerSnapshot{
			TotalSpins:    req.TotalSpins,
			TotalWins:     req.TotalWins,
			TotalWinnings: winnings,
			TotalPoints:   req.TotalPoints,
		}

		merged, err := svc.Reconcile(r.Context(), identity, local)
		if err != nil {
			log.Error("Reconcile failed", "error", err, "user_id", identity.Key())
			metrics.ReconcilesTotal.WithLabelValues("error").Inc()
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}
		metrics.ReconcilesTotal.WithLabelValues("ok").Inc()

		respondJSON(w, http.StatusOK, SyncStatsResponse{Merged: merged})
	}
}

// HandleGetUserStats handles GET requests for one player's aggregate row
func HandleGetUserStats(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			respondError(w, http.StatusBadRequest, "user_id is required")
			return
		}

		row, err := svc.GetPlayerStats(r.Context(), userID)
		if err != nil {
			log.Warn("Failed to get user stats", "error", err, "user_id", userID)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, row)
	}
}

// HandleGetLeaderboard handles GET requests for the top players
func HandleGetLeaderboard(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
				return
			}
			limit = parsed
		}

		entries, err := svc.GetLeaderboard(r.Context(), limit)
		if err != nil {
			log.Error("Failed to get leaderboard", "error", err)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}
		if entries == nil {
			entries = []domain.LeaderboardEntry{}
		}

		respondJSON(w, http.StatusOK, entries)
	}
}

// HandleGetSpinHistory handles GET requests for a player's recent spins
func HandleGetSpinHistory(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			respondError(w, http.StatusBadRequest, "user_id is required")
			return
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
				return
			}
			limit = parsed
		}

		entries, err := svc.GetSpinHistory(r.Context(), userID, limit)
		if err != nil {
			log.Error("Failed to get spin history", "error", err, "user_id", userID)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}
		if entries == nil {
			entries = []domain.SpinHistoryEntry{}
		}

		respondJSON(w, http.StatusOK, entries)
	}
}
