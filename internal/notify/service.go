package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/fortunaspin/fortuna/internal/domain"
	"github.com/fortunaspin/fortuna/internal/logger"
	"github.com/fortunaspin/fortuna/internal/metrics"
)

// Service manages notification token registration and reminder delivery.
type Service interface {
	SaveToken(ctx context.Context, token *domain.NotificationToken) error
	Disable(ctx context.Context, userID string) error

	// SendReminders pushes the daily spin reminder to every active token,
	// disabling tokens the delivery endpoint reports as invalid. Returns
	// the number of tokens notified.
	SendReminders(ctx context.Context) (int, error)
}

// pushRequest is the payload delivery endpoints accept.
type pushRequest struct {
	NotificationID string   `json:"notificationId"`
	Title          string   `json:"title"`
	Body           string   `json:"body"`
	TargetURL      string   `json:"targetUrl"`
	Tokens         []string `json:"tokens"`
}

// pushResponse reports per-token delivery results.
type pushResponse struct {
	Result struct {
		SuccessfulTokens  []string `json:"successfulTokens"`
		InvalidTokens     []string `json:"invalidTokens"`
		RateLimitedTokens []string `json:"rateLimitedTokens"`
	} `json:"result"`
}

type service struct {
	repo      Repository
	http      *http.Client
	targetURL string
}

// NewService creates a notification service. targetURL is the page a
// delivered notification opens.
func NewService(repo Repository, targetURL string) Service {
	return &service{
		repo:      repo,
		http:      &http.Client{Timeout: DeliveryTimeout},
		targetURL: targetURL,
	}
}

func (s *service) SaveToken(ctx context.Context, token *domain.NotificationToken) error {
	if token == nil || token.Token == "" || token.URL == "" {
		return errors.New(ErrMsgTokenRequired)
	}
	if token.UserID == "" {
		return errors.New(ErrMsgUserIDRequired)
	}

	token.IsActive = true
	token.UpdatedAt = time.Now().UTC()

	if err := s.repo.SaveToken(ctx, token); err != nil {
		return fmt.Errorf(ErrMsgSaveTokenFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgTokenSaved, "user_id", token.UserID)
	return nil
}

func (s *service) Disable(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New(ErrMsgUserIDRequired)
	}

	if err := s.repo.DisableUser(ctx, userID); err != nil {
		return fmt.Errorf(ErrMsgDisableFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgTokenDisabled, "user_id", userID)
	return nil
}

func (s *service) SendReminders(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	tokens, err := s.repo.ListActiveTokens(ctx)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgListTokensFailed, err)
	}
	if len(tokens) == 0 {
		return 0, nil
	}

	// Tokens registered against different endpoints are delivered separately.
	byURL := make(map[string][]string)
	for _, t := range tokens {
		byURL[t.URL] = append(byURL[t.URL], t.Token)
	}

	notified := 0
	var deadTokens []string
	for url, batch := range byURL {
		for start := 0; start < len(batch); start += MaxTokensPerRequest {
			end := start + MaxTokensPerRequest
			if end > len(batch) {
				end = len(batch)
			}
			chunk := batch[start:end]

			invalid, err := s.deliver(ctx, url, chunk)
			if err != nil {
				log.Error(LogMsgReminderFailed, "error", err, "url", url)
				continue
			}
			notified += len(chunk) - len(invalid)
			deadTokens = append(deadTokens, invalid...)
		}
	}

	if len(deadTokens) > 0 {
		if err := s.repo.DisableTokens(ctx, deadTokens); err != nil {
			log.Error(LogMsgReminderFailed, "error", err)
		} else {
			log.Info(LogMsgDeadTokensDisabled, "count", len(deadTokens))
		}
	}

	metrics.RemindersNotified.Add(float64(notified))
	return notified, nil
}

// deliver posts one reminder batch and returns the tokens the endpoint
// rejected as invalid.
func (s *service) deliver(ctx context.Context, url string, tokens []string) ([]string, error) {
	payload := pushRequest{
		NotificationID: uuid.NewString(),
		Title:          ReminderTitle,
		Body:           ReminderBody,
		TargetURL:      s.targetURL,
		Tokens:         tokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgDeliveryFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(ErrMsgBadStatus, resp.StatusCode)
	}

	var pushResp pushResponse
	if err := json.NewDecoder(resp.Body).Decode(&pushResp); err != nil {
		return nil, fmt.Errorf(ErrMsgDeliveryFailed, err)
	}
	return pushResp.Result.InvalidTokens, nil
}
