package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fortunaspin/fortuna/internal/domain"
	"github.com/fortunaspin/fortuna/internal/logger"
	"github.com/fortunaspin/fortuna/internal/metrics"
	"github.com/fortunaspin/fortuna/internal/session"
)

// SpinRequest represents a request to run one spin
type SpinRequest struct {
	FID           int64  `json:"fid" validate:"min=0"`
	WalletAddress string `json:"wallet_address" validate:"wallet"`
	Username      string `json:"username" validate:"max=100,excludesall=\x00\n\r\t"`
	AvatarURL     string `json:"pfp_url" validate:"omitempty,url,max=500"`
	DeviceID      string `json:"device_id" validate:"max=100,excludesall=\x00\n\r\t"`
}

// SpinResponse carries the resolved outcome back to the client
type SpinResponse struct {
	Result *session.SpinResult `json:"result"`
}

// HandleSpin handles POST requests to run a spin session
func HandleSpin(svc session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SpinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode spin request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid spin request", "error", err)
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		result, err := svc.Spin(r.Context(), session.SpinRequest{
			Identity: domain.Identity{
				FID:           req.FID,
				WalletAddress: req.WalletAddress,
				Username:      req.Username,
				AvatarURL:     req.AvatarURL,
			},
			DeviceID: req.DeviceID,
		})
		if err != nil {
			log.Error("Spin failed", "error", err, "fid", req.FID)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		amount, _ := result.Outcome.Amount.Float64()
		metrics.RecordSpinOutcome(result.Outcome.Segment.Name, result.Outcome.IsWin, amount, result.Outcome.Points)

		log.Info("Spin completed",
			"fid", req.FID,
			"segment", result.Outcome.Segment.Name,
			"is_win", result.Outcome.IsWin)

		respondJSON(w, http.StatusOK, SpinResponse{Result: result})
	}
}
