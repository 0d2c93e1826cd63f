package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL   = "https://luminaai.zesbe.my.id/api/v1"
	defaultUserAgent = "lumina/0.1"
	defaultTimeout   = 15 * time.Second
)

// TokenStore persists the credential pair issued by the service. Login,
// register, and refresh save through it as a side effect of success so
// callers never forget to.
type TokenStore interface {
	Save(access, refresh string) error
}

// Options configure the API client.
type Options struct {
	BaseURL   string            // empty uses the public service URL
	Transport http.RoundTripper // request pipeline, typically *auth.Transport
	Tokens    TokenStore
	Timeout   time.Duration
	Logger    *zap.Logger
}

// Client talks to the Lumina HTTP API. All operations translate their
// outcome into a Result; the only errors it produces are data.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	tokens    TokenStore
	log       *zap.Logger
	userAgent string
}

// New builds a Client from the provided options.
func New(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Transport: opts.Transport,
			Timeout:   timeout,
		},
		tokens:    opts.Tokens,
		log:       logger,
		userAgent: defaultUserAgent,
	}, nil
}

// Origin returns the scheme://host portion of the base URL, used to resolve
// relative media paths in generation records.
func (c *Client) Origin() string {
	return c.baseURL.Scheme + "://" + c.baseURL.Host
}

// Login exchanges credentials for a session. Returned tokens are persisted
// before the user is surfaced.
func (c *Client) Login(ctx context.Context, email, password string) Result[User] {
	body := map[string]string{"email": email, "password": password}
	return c.authExchange(ctx, "auth/login", body)
}

// Register creates an account and opens a session in one step.
func (c *Client) Register(ctx context.Context, name, email, password string) Result[User] {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.authExchange(ctx, "auth/register", body)
}

// Refresh exchanges a refresh token for a new credential pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) Result[User] {
	body := map[string]string{"refresh_token": refreshToken}
	return c.authExchange(ctx, "auth/refresh", body)
}

func (c *Client) authExchange(ctx context.Context, path string, body map[string]string) Result[User] {
	var payload authResponse
	if err := c.do(ctx, http.MethodPost, path, nil, body, &payload); err != nil {
		return Err[User](errText(err))
	}
	if c.tokens != nil {
		if err := c.tokens.Save(payload.Tokens.AccessToken, payload.Tokens.RefreshToken); err != nil {
			return Err[User](errText(err))
		}
	}
	return Ok(payload.User)
}

// FetchProfile retrieves the authenticated user's profile.
func (c *Client) FetchProfile(ctx context.Context) Result[User] {
	var payload profileResponse
	if err := c.do(ctx, http.MethodGet, "profile", nil, nil, &payload); err != nil {
		return Err[User](errText(err))
	}
	return Ok(payload.User)
}

// FetchGenerations lists the user's generation records.
func (c *Client) FetchGenerations(ctx context.Context, kind string, limit int) Result[[]Generation] {
	return c.fetchList(ctx, "generations", kind, limit)
}

// FetchExplore lists the public explore feed. No authentication is attached.
func (c *Client) FetchExplore(ctx context.Context, kind string, limit int) Result[[]Generation] {
	return c.fetchList(ctx, "explore", kind, limit)
}

func (c *Client) fetchList(ctx context.Context, path, kind string, limit int) Result[[]Generation] {
	query := url.Values{}
	if kind = strings.TrimSpace(kind); kind != "" {
		query.Set("type", kind)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var payload generationsResponse
	if err := c.do(ctx, http.MethodGet, path, query, nil, &payload); err != nil {
		return Err[[]Generation](errText(err))
	}
	return Ok(payload.Generations)
}

// WatchGenerations emits Pending followed by the terminal result of a
// library fetch, then closes the channel.
func (c *Client) WatchGenerations(ctx context.Context, kind string, limit int) <-chan Result[[]Generation] {
	return c.watchList(ctx, "generations", kind, limit)
}

// WatchExplore emits Pending followed by the terminal result of an explore
// fetch, then closes the channel.
func (c *Client) WatchExplore(ctx context.Context, kind string, limit int) <-chan Result[[]Generation] {
	return c.watchList(ctx, "explore", kind, limit)
}

func (c *Client) watchList(ctx context.Context, path, kind string, limit int) <-chan Result[[]Generation] {
	ch := make(chan Result[[]Generation], 2)
	go func() {
		defer close(ch)
		ch <- Pending[[]Generation]()
		ch <- c.fetchList(ctx, path, kind, limit)
	}()
	return ch
}

// FetchGeneration retrieves a single generation record.
func (c *Client) FetchGeneration(ctx context.Context, id int64) Result[Generation] {
	var payload Generation
	if err := c.do(ctx, http.MethodGet, "generations/"+strconv.FormatInt(id, 10), nil, nil, &payload); err != nil {
		return Err[Generation](errText(err))
	}
	return Ok(payload)
}

// DeleteGeneration removes a generation record.
func (c *Client) DeleteGeneration(ctx context.Context, id int64) Result[string] {
	return c.message(ctx, http.MethodDelete, "generations/"+strconv.FormatInt(id, 10))
}

// ToggleFavorite flips the favorite flag server-side.
func (c *Client) ToggleFavorite(ctx context.Context, id int64) Result[string] {
	return c.message(ctx, http.MethodPost, "generations/"+strconv.FormatInt(id, 10)+"/favorite")
}

// TogglePublic flips the public-visibility flag server-side.
func (c *Client) TogglePublic(ctx context.Context, id int64) Result[string] {
	return c.message(ctx, http.MethodPost, "generations/"+strconv.FormatInt(id, 10)+"/public")
}

func (c *Client) message(ctx context.Context, method, path string) Result[string] {
	var payload messageResponse
	if err := c.do(ctx, method, path, nil, nil, &payload); err != nil {
		return Err[string](errText(err))
	}
	return Ok(payload.Message)
}

// Generate submits a generation request. The service computes the record,
// so there is nothing to show optimistically; callers surface a generating
// flag until this resolves.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) Result[Generation] {
	var payload generateResponse
	if err := c.do(ctx, http.MethodPost, "music/generate", nil, req, &payload); err != nil {
		return Err[Generation](errText(err))
	}
	if payload.Generation == nil {
		return Err[Generation](payload.Message)
	}
	return Ok(*payload.Generation)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: path, RawQuery: query.Encode()}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		msg := serverMessage(resp.Body, resp.StatusCode, path)
		c.log.Warn("api call failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return &serverError{status: resp.StatusCode, msg: msg}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// serverError carries the status and extracted message of a non-2xx reply.
type serverError struct {
	status int
	msg    string
}

func (e *serverError) Error() string { return e.msg }

// serverMessage pulls a human-readable message out of an error body. The
// service answers with either {"error": …} or {"message": …}.
func serverMessage(body io.Reader, status int, path string) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fmt.Sprintf("api %s returned status %d", path, status)
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
