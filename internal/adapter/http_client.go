// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-digest-sync/internal/config"
	"github.com/MKhiriev/go-digest-sync/models"
	"github.com/go-resty/resty/v2"
)

type httpSyncAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPSyncAdapter constructs the HTTP implementation of [SyncAdapter]
// from the client configuration.
func NewHTTPSyncAdapter(cfg config.Adapter) SyncAdapter {
	baseURL := cfg.HTTPAddress
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout)

	return &httpSyncAdapter{client: cli}
}

func (h *httpSyncAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpSyncAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpSyncAdapter) StartSession(ctx context.Context, req models.StartSessionRequest) (models.SyncSessionInfo, error) {
	var info models.SyncSessionInfo
	if err := h.postJSON(ctx, "/api/sync/session", req, &info); err != nil {
		return models.SyncSessionInfo{}, fmt.Errorf("start session: %w", err)
	}
	return info, nil
}

func (h *httpSyncAdapter) FetchFull(ctx context.Context, req models.FullSyncRequest) (models.FullSyncResult, error) {
	var result models.FullSyncResult
	if err := h.postJSON(ctx, "/api/sync/full", req, &result); err != nil {
		return models.FullSyncResult{}, fmt.Errorf("fetch full page: %w", err)
	}
	return result, nil
}

func (h *httpSyncAdapter) FetchDelta(ctx context.Context, req models.DeltaSyncRequest) (models.DeltaSyncResult, error) {
	var result models.DeltaSyncResult
	if err := h.postJSON(ctx, "/api/sync/delta", req, &result); err != nil {
		return models.DeltaSyncResult{}, fmt.Errorf("fetch delta page: %w", err)
	}
	return result, nil
}

func (h *httpSyncAdapter) Apply(ctx context.Context, req models.ApplyRequest) (models.ApplyResult, error) {
	var result models.ApplyResult
	if err := h.postJSON(ctx, "/api/sync/apply", req, &result); err != nil {
		return models.ApplyResult{}, fmt.Errorf("apply changes: %w", err)
	}
	return result, nil
}

// postJSON performs one authenticated POST and decodes the JSON response
// into out when the call succeeds.
func (h *httpSyncAdapter) postJSON(ctx context.Context, path string, body, out any) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(path)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if err = json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (h *httpSyncAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
