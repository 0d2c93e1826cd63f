package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/luminaai/lumina/internal/api"
	"github.com/luminaai/lumina/internal/auth"
	"github.com/luminaai/lumina/internal/config"
	"github.com/luminaai/lumina/internal/creds"
	"github.com/luminaai/lumina/internal/player"
	"github.com/luminaai/lumina/internal/state"
	"github.com/luminaai/lumina/internal/ui"
)

// Options configure the Lumina application.
type Options struct {
	ConfigPath string
	CredsPath  string // empty uses default ~/.config/lumina/credentials.toml
	PollEvery  int    // seconds; zero uses default
}

// Run wires the sync core together and boots the TUI until the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg.LogPath)
	defer func() { _ = logger.Sync() }()

	store := creds.New(opts.CredsPath)
	if err := store.Load(); err != nil {
		logger.Warn("load credentials failed", zap.Error(err))
	}

	transport := &auth.Transport{
		Base:       http.DefaultTransport,
		Tokens:     store,
		RefreshURL: strings.TrimRight(cfg.BaseURL, "/") + "/auth/refresh",
		Logger:     logger,
	}

	client, err := api.New(api.Options{
		BaseURL:   cfg.BaseURL,
		Transport: transport,
		Tokens:    store,
		Timeout:   cfg.RequestTimeout,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	session := auth.NewSession(client, store, logger)
	transport.OnAuthLost = session.AuthLost

	view := state.New(client, cfg.DefaultType, cfg.ListLimit, logger)

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}
	StartPoller(ctx, view, interval, logger)

	// Settle the unknown session state while the UI comes up.
	go session.Resolve(ctx)

	logger.Info("starting", zap.String("base_url", cfg.BaseURL))

	return ui.Run(ui.Options{
		Context: ctx,
		Session: session,
		Store:   view,
		Player:  player.Noop{},
		Origin:  client.Origin(),
		Model:   cfg.DefaultModel,
	})
}

// newLogger builds a file-backed logger. The TUI owns the terminal, so
// nothing may write to stdout or stderr while it runs.
func newLogger(path string) *zap.Logger {
	if path == "" {
		return zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zap.NewNop()
	}
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
