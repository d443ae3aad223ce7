package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePool struct {
	pingErr error
}

func (p *fakePool) Ping(context.Context) error { return p.pingErr }
func (p *fakePool) Close()                     {}

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	HandleHealthz()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestHandleReadyz(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		expectedStatus int
	}{
		{name: "database reachable", pingErr: nil, expectedStatus: http.StatusOK},
		{name: "database down", pingErr: errors.New("refused"), expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
			rec := httptest.NewRecorder()

			HandleReadyz(&fakePool{pingErr: tt.pingErr})(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestWalletValidation(t *testing.T) {
	InitValidator()

	type probe struct {
		Address string `validate:"wallet"`
	}

	assert.NoError(t, GetValidator().ValidateStruct(probe{Address: ""}))
	assert.NoError(t, GetValidator().ValidateStruct(probe{Address: "0x1234567890abcdef1234567890abcdef12345678"}))
	assert.Error(t, GetValidator().ValidateStruct(probe{Address: "0x123"}))
	assert.Error(t, GetValidator().ValidateStruct(probe{Address: "1234567890abcdef1234567890abcdef12345678"}))
}
