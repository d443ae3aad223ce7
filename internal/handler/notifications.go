package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fortunaspin/fortuna/internal/domain"
	"github.com/fortunaspin/fortuna/internal/logger"
	"github.com/fortunaspin/fortuna/internal/notify"
)

// SaveTokenRequest registers a push notification token
type SaveTokenRequest struct {
	FID   int64  `json:"fid" validate:"required,min=1"`
	URL   string `json:"url" validate:"required,url,max=500"`
	Token string `json:"token" validate:"required,max=500"`
}

// DisableNotificationsRequest turns off notifications for a user
type DisableNotificationsRequest struct {
	FID int64 `json:"fid" validate:"required,min=1"`
}

// HandleSaveNotificationToken handles POST requests to register a token
func HandleSaveNotificationToken(svc notify.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SaveTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode token request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid token request", "error", err)
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		token := &domain.NotificationToken{
			UserID: fmt.Sprintf("fid:%d", req.FID),
			FID:    req.FID,
			URL:    req.URL,
			Token:  req.Token,
		}
		if err := svc.SaveToken(r.Context(), token); err != nil {
			log.Error("Failed to save token", "error", err, "fid", req.FID)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Notification token saved"})
	}
}

// HandleDisableNotifications handles POST requests to disable notifications
func HandleDisableNotifications(svc notify.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req DisableNotificationsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode disable request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid disable request", "error", err)
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		if err := svc.Disable(r.Context(), fmt.Sprintf("fid:%d", req.FID)); err != nil {
			log.Error("Failed to disable notifications", "error", err, "fid", req.FID)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Notifications disabled"})
	}
}
