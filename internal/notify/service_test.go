package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortunaspin/fortuna/internal/domain"
)

type mockRepo struct {
	saved         []*domain.NotificationToken
	disabled      []string
	disabledUsers []string
	active        []domain.NotificationToken
	listErr       error
}

func (m *mockRepo) SaveToken(_ context.Context, token *domain.NotificationToken) error {
	m.saved = append(m.saved, token)
	return nil
}

func (m *mockRepo) DisableTokens(_ context.Context, tokens []string) error {
	m.disabled = append(m.disabled, tokens...)
	return nil
}

func (m *mockRepo) DisableUser(_ context.Context, userID string) error {
	m.disabledUsers = append(m.disabledUsers, userID)
	return nil
}

func (m *mockRepo) ListActiveTokens(_ context.Context) ([]domain.NotificationToken, error) {
	return m.active, m.listErr
}

func TestSaveTokenActivates(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, "https://game.example")

	err := svc.SaveToken(context.Background(), &domain.NotificationToken{
		UserID: "fid:1",
		FID:    1,
		URL:    "https://push.example",
		Token:  "tok-1",
	})

	require.NoError(t, err)
	require.Len(t, repo.saved, 1)
	assert.True(t, repo.saved[0].IsActive)
	assert.False(t, repo.saved[0].UpdatedAt.IsZero())
}

func TestSaveTokenValidation(t *testing.T) {
	svc := NewService(&mockRepo{}, "https://game.example")

	err := svc.SaveToken(context.Background(), &domain.NotificationToken{UserID: "fid:1"})

	assert.Error(t, err)
}

func TestDisableMarksUserTokens(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, "https://game.example")

	err := svc.Disable(context.Background(), "fid:1")

	require.NoError(t, err)
	assert.Equal(t, []string{"fid:1"}, repo.disabledUsers)
}

func TestSendRemindersDeliversBatch(t *testing.T) {
	var got pushRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"result":{"successfulTokens":["tok-1","tok-2"],"invalidTokens":[]}}`))
	}))
	defer srv.Close()

	repo := &mockRepo{active: []domain.NotificationToken{
		{UserID: "fid:1", Token: "tok-1", URL: srv.URL},
		{UserID: "fid:2", Token: "tok-2", URL: srv.URL},
	}}
	svc := NewService(repo, "https://game.example")

	notified, err := svc.SendReminders(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, notified)
	assert.Equal(t, ReminderTitle, got.Title)
	assert.Equal(t, "https://game.example", got.TargetURL)
	assert.ElementsMatch(t, []string{"tok-1", "tok-2"}, got.Tokens)
	assert.NotEmpty(t, got.NotificationID)
}

func TestSendRemindersDisablesInvalidTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":{"successfulTokens":["tok-1"],"invalidTokens":["tok-2"]}}`))
	}))
	defer srv.Close()

	repo := &mockRepo{active: []domain.NotificationToken{
		{UserID: "fid:1", Token: "tok-1", URL: srv.URL},
		{UserID: "fid:2", Token: "tok-2", URL: srv.URL},
	}}
	svc := NewService(repo, "https://game.example")

	notified, err := svc.SendReminders(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, notified)
	assert.Equal(t, []string{"tok-2"}, repo.disabled)
}

func TestSendRemindersEndpointFailureIsNonFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	repo := &mockRepo{active: []domain.NotificationToken{
		{UserID: "fid:1", Token: "tok-1", URL: srv.URL},
	}}
	svc := NewService(repo, "https://game.example")

	notified, err := svc.SendReminders(context.Background())

	require.NoError(t, err)
	assert.Zero(t, notified)
	assert.Empty(t, repo.disabled)
}

func TestSendRemindersNoActiveTokens(t *testing.T) {
	svc := NewService(&mockRepo{}, "https://game.example")

	notified, err := svc.SendReminders(context.Background())

	require.NoError(t, err)
	assert.Zero(t, notified)
}
