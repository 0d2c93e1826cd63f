// Package auth owns the session lifecycle: credential probing at startup,
// login, registration, logout, and the bearer/refresh request interceptor
// consumed by the transport layer.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/luminaai/lumina/internal/api"
	"github.com/luminaai/lumina/internal/creds"
)

// Status is the tri-valued session state. A process starts at
// StatusUnknown and resolves exactly once by probing the credential store.
type Status int

const (
	StatusUnknown Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Gateway is the slice of the API client the session needs.
type Gateway interface {
	Login(ctx context.Context, email, password string) api.Result[api.User]
	Register(ctx context.Context, name, email, password string) api.Result[api.User]
	Refresh(ctx context.Context, refreshToken string) api.Result[api.User]
	FetchProfile(ctx context.Context) api.Result[api.User]
}

var (
	_ Gateway     = (*api.Client)(nil)
	_ Credentials = (*creds.Store)(nil)
)

// State is an immutable view of the session for the UI.
type State struct {
	Status Status
	User   api.User
	Busy   bool // a login or registration is in flight
	Err    string
}

// Session is the state machine over the credential lifecycle.
type Session struct {
	mu     sync.Mutex
	status Status
	user   api.User
	busy   bool
	err    string

	gw      Gateway
	creds   Credentials
	log     *zap.Logger
	changes chan struct{}
}

// NewSession creates a Session in the unknown state.
func NewSession(gw Gateway, credentials Credentials, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		gw:      gw,
		creds:   credentials,
		log:     logger,
		changes: make(chan struct{}, 1),
	}
}

// State returns the current session snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Status: s.status, User: s.user, Busy: s.busy, Err: s.err}
}

// Changes returns a coalescing notification channel; a receive means the
// state may have changed since the last read.
func (s *Session) Changes() <-chan struct{} {
	return s.changes
}

// Resolve settles the unknown state once at startup: no stored credential
// means unauthenticated; otherwise a profile probe decides. A stored access
// token that is a parseable JWT already past its expiry skips the doomed
// probe and goes straight to the refresh exchange.
func (s *Session) Resolve(ctx context.Context) {
	if !s.creds.HasAccess() {
		s.transition(StatusUnauthenticated, api.User{})
		return
	}

	if tokenExpired(s.creds.AccessToken()) {
		if refresh := s.creds.RefreshToken(); refresh != "" {
			if res := s.gw.Refresh(ctx, refresh); res.OK() {
				s.log.Info("session restored via refresh exchange")
				s.transition(StatusAuthenticated, res.Value())
				return
			}
		}
		s.log.Info("stored access token expired, forcing re-login")
		if err := s.creds.Clear(); err != nil {
			s.log.Warn("clear credentials failed", zap.Error(err))
		}
		s.transition(StatusUnauthenticated, api.User{})
		return
	}

	res := s.gw.FetchProfile(ctx)
	if res.OK() {
		s.transition(StatusAuthenticated, res.Value())
		return
	}
	s.log.Info("profile probe failed, treating as logged out",
		zap.String("reason", res.Message()))
	s.transition(StatusUnauthenticated, api.User{})
}

// Login authenticates and, on success, moves to the authenticated state.
// The gateway persists the returned credentials before this returns.
func (s *Session) Login(ctx context.Context, email, password string) {
	s.setBusy(true)
	res := s.gw.Login(ctx, email, password)
	s.finishExchange(res)
}

// Register creates an account and opens a session on success.
func (s *Session) Register(ctx context.Context, name, email, password string) {
	s.setBusy(true)
	res := s.gw.Register(ctx, name, email, password)
	s.finishExchange(res)
}

func (s *Session) finishExchange(res api.Result[api.User]) {
	s.mu.Lock()
	s.busy = false
	if res.OK() {
		s.status = StatusAuthenticated
		s.user = res.Value()
		s.err = ""
	} else {
		s.err = res.Message()
	}
	s.mu.Unlock()
	s.notify()
}

// Logout clears the credential store and moves to unauthenticated.
func (s *Session) Logout() {
	if err := s.creds.Clear(); err != nil {
		s.log.Warn("clear credentials failed", zap.Error(err))
	}
	s.transition(StatusUnauthenticated, api.User{})
}

// AuthLost is invoked by the request interceptor when a 401 could not be
// recovered by the refresh exchange.
func (s *Session) AuthLost() {
	s.log.Info("authorization lost, session expired")
	s.transition(StatusUnauthenticated, api.User{})
}

// ClearError drops the last login/registration error.
func (s *Session) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
	s.notify()
}

func (s *Session) transition(status Status, user api.User) {
	s.mu.Lock()
	s.status = status
	s.user = user
	s.mu.Unlock()
	s.notify()
}

func (s *Session) setBusy(busy bool) {
	s.mu.Lock()
	s.busy = busy
	s.err = ""
	s.mu.Unlock()
	s.notify()
}

func (s *Session) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// tokenExpired peeks at the unverified claims of a stored access token.
// Opaque (non-JWT) tokens or tokens without an expiry are left for the
// server to judge.
func tokenExpired(raw string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().After(exp.Time)
}
