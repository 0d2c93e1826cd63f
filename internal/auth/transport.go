package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Credentials is the slice of the credential store the auth layer needs.
// AccessToken and RefreshToken are synchronous best-effort reads, safe to
// call inside the request pipeline.
type Credentials interface {
	HasAccess() bool
	AccessToken() string
	RefreshToken() string
	Save(access, refresh string) error
	Clear() error
}

// Endpoints that must never carry an Authorization header. Login, register,
// and refresh establish credentials; explore is a public feed.
var openPaths = []string{"auth/login", "auth/register", "auth/refresh", "explore"}

// Transport is the request interceptor. It attaches the bearer credential
// to authenticated endpoints and, on a 401, runs the refresh exchange and
// retries the original request exactly once. A second 401 is surfaced
// as-is. The refresh exchange talks to the base transport directly rather
// than through the API client, which would route back through this hook.
type Transport struct {
	Base       http.RoundTripper
	Tokens     Credentials
	RefreshURL string // absolute auth/refresh endpoint
	OnAuthLost func() // invoked when a 401 cannot be recovered
	Logger     *zap.Logger
}

var _ http.RoundTripper = (*Transport)(nil)

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if skipAuth(req.URL.Path) {
		return t.base().RoundTrip(req)
	}

	token := t.Tokens.AccessToken()
	if token == "" {
		return t.base().RoundTrip(req)
	}

	resp, err := t.base().RoundTrip(withAuth(req, token))
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	refresh := t.Tokens.RefreshToken()
	if refresh == "" {
		// Nothing to exchange; the UI layer forces re-login.
		t.authLost()
		return resp, nil
	}

	access, rerr := t.exchange(req.Context(), refresh)
	if rerr != nil {
		t.log().Warn("token refresh failed", zap.Error(rerr))
		t.authLost()
		return resp, nil
	}

	retry, rerr := replay(req, access)
	if rerr != nil {
		// Body cannot be replayed; surface the original 401.
		t.log().Warn("cannot retry request", zap.Error(rerr))
		return resp, nil
	}
	drain(resp)
	t.log().Info("retrying request after refresh", zap.String("path", req.URL.Path))
	return t.base().RoundTrip(retry)
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Transport) log() *zap.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return zap.NewNop()
}

func (t *Transport) authLost() {
	if t.OnAuthLost != nil {
		t.OnAuthLost()
	}
}

// exchange posts the refresh credential and persists the returned pair.
// This is a single blocking wait inside the request pipeline; the caller's
// request completion is held until it resolves.
func (t *Transport) exchange(ctx context.Context, refreshToken string) (string, error) {
	if t.RefreshURL == "" {
		return "", fmt.Errorf("refresh url not configured")
	}
	encoded, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return "", fmt.Errorf("encode refresh request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.RefreshURL, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("create refresh request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.base().RoundTrip(req)
	if err != nil {
		return "", fmt.Errorf("execute refresh request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("refresh returned status %d", resp.StatusCode)
	}

	var payload struct {
		Tokens struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"tokens"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}
	if payload.Tokens.AccessToken == "" {
		return "", fmt.Errorf("refresh response carried no access token")
	}
	if err := t.Tokens.Save(payload.Tokens.AccessToken, payload.Tokens.RefreshToken); err != nil {
		// The retry can still proceed with the in-memory token.
		t.log().Warn("persist refreshed tokens failed", zap.Error(err))
	}
	return payload.Tokens.AccessToken, nil
}

func skipAuth(path string) bool {
	for _, open := range openPaths {
		if strings.Contains(path, open) {
			return true
		}
	}
	return false
}

func withAuth(req *http.Request, token string) *http.Request {
	authed := req.Clone(req.Context())
	authed.Header.Set("Authorization", "Bearer "+token)
	authed.Header.Set("X-Request-ID", uuid.NewString())
	return authed
}

// replay rebuilds the original request with a fresh credential. Requests
// with a one-shot body that cannot be reconstructed are not retried.
func replay(req *http.Request, token string) (*http.Request, error) {
	retry := req.Clone(req.Context())
	retry.Header.Set("Authorization", "Bearer "+token)
	retry.Header.Set("X-Request-ID", uuid.NewString())
	if req.Body == nil || req.Body == http.NoBody {
		return retry, nil
	}
	if req.GetBody == nil {
		return nil, fmt.Errorf("request body is not replayable")
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("reconstruct request body: %w", err)
	}
	retry.Body = body
	return retry, nil
}

func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
