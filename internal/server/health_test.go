package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHealthEndpoints(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     map[string]Check
		path       string
		wantStatus int
		wantBody   HealthResponse
	}{
		{
			name:       "no checks healthy",
			path:       "/health",
			wantStatus: http.StatusOK,
			wantBody:   HealthResponse{Status: "healthy", Checks: nil},
		},
		{
			name:       "redis healthy",
			checks:     map[string]Check{"redis": ok},
			path:       "/health",
			wantStatus: http.StatusOK,
			wantBody:   HealthResponse{Status: "healthy", Checks: map[string]string{"redis": "healthy"}},
		},
		{
			name:       "redis down",
			checks:     map[string]Check{"redis": down},
			path:       "/health",
			wantStatus: http.StatusServiceUnavailable,
			wantBody: HealthResponse{
				Status: "unhealthy",
				Checks: map[string]string{"redis": "unhealthy: connection refused"},
			},
		},
		{
			name:       "ready",
			checks:     map[string]Check{"redis": ok},
			path:       "/ready",
			wantStatus: http.StatusOK,
			wantBody:   HealthResponse{Status: "ready"},
		},
		{
			name:       "not ready",
			checks:     map[string]Check{"redis": down},
			path:       "/ready",
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   HealthResponse{Status: "not ready"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs := NewHealthServer(0, tt.checks, zap.NewNop())
			rec := httptest.NewRecorder()
			hs.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var got HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.wantBody, got)
		})
	}
}
