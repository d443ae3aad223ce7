package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fortunaspin/fortuna/internal/domain"
)

// MockNotifyService mocks the notify.Service interface
type MockNotifyService struct {
	mock.Mock
}

func (m *MockNotifyService) SaveToken(ctx context.Context, token *domain.NotificationToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockNotifyService) Disable(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotifyService) SendReminders(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestHandleSaveNotificationToken(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockNotifyService)
		expectedStatus int
	}{
		{
			name:        "successful registration",
			requestBody: SaveTokenRequest{FID: 42, URL: "https://push.example", Token: "tok-1"},
			setupMock: func(m *MockNotifyService) {
				m.On("SaveToken", mock.Anything, mock.MatchedBy(func(token *domain.NotificationToken) bool {
					return token.UserID == "fid:42" && token.Token == "tok-1"
				})).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing fid",
			requestBody:    SaveTokenRequest{URL: "https://push.example", Token: "tok-1"},
			setupMock:      func(m *MockNotifyService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad url",
			requestBody:    SaveTokenRequest{FID: 42, URL: "not-a-url", Token: "tok-1"},
			setupMock:      func(m *MockNotifyService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockNotifyService{}
			tt.setupMock(mockSvc)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/token", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			HandleSaveNotificationToken(mockSvc)(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleDisableNotifications(t *testing.T) {
	InitValidator()

	mockSvc := &MockNotifyService{}
	mockSvc.On("Disable", mock.Anything, "fid:42").Return(nil)

	body, _ := json.Marshal(DisableNotificationsRequest{FID: 42})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/disable", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	HandleDisableNotifications(mockSvc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockSvc.AssertExpectations(t)
}
