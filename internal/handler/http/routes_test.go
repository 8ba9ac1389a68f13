package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-digest-sync/internal/config"
	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/internal/service"
	"github.com/MKhiriev/go-digest-sync/internal/utils"
	"github.com/MKhiriev/go-digest-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutes_RequireAuthentication(t *testing.T) {
	h := NewHandler(&service.Services{
		AuthService: service.NewAuthService(config.App{TokenSignKey: testSignKey, TokenIssuer: testIssuer}, logger.Nop()),
	}, logger.Nop())
	router := h.Init()

	for _, route := range []string{"/api/sync/session", "/api/sync/full", "/api/sync/delta", "/api/sync/apply"} {
		req := httptest.NewRequest(http.MethodPost, route, bytes.NewReader([]byte(`{}`)))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, route)
	}
}

func TestRoutes_AuthenticatedSessionStart(t *testing.T) {
	h := NewHandler(&service.Services{
		AuthService: service.NewAuthService(config.App{TokenSignKey: testSignKey, TokenIssuer: testIssuer}, logger.Nop()),
		SessionService: &mockSessionService{
			startFn: func(_ context.Context, ownerID int64, _ string, _ int) (models.SyncSessionInfo, error) {
				assert.Equal(t, int64(42), ownerID)
				return models.SyncSessionInfo{SessionID: "token-1", DefaultLimit: 100, MaxLimit: 500}, nil
			},
		},
	}, logger.Nop())
	router := h.Init()

	token, err := utils.GenerateToken(testIssuer, 42, time.Hour, testSignKey)
	require.NoError(t, err)

	body, err := json.Marshal(models.StartSessionRequest{ClientID: "device-a"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/sync/session", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token.SignedString)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))

	var info models.SyncSessionInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "token-1", info.SessionID)
}
