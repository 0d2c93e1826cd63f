// Package app provides the orchestration layer for the Lumina application.
//
// # Overview
//
// This package wires together configuration, credentials, the authenticated
// HTTP transport, the API client, the session, the library store, and the
// UI. It is the composition root: every dependency is constructed here and
// nowhere else.
//
// # Initialization Order
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()      Read ~/.config/lumina/config.toml
//	       ├─────> newLogger()        zap file logger (TUI owns the terminal)
//	       ├─────> creds.New()        Load persisted token pair
//	       ├─────> auth.Transport{}   Bearer attachment + refresh-and-retry
//	       ├─────> api.New()          Typed client over that transport
//	       ├─────> auth.NewSession()  Session lifecycle
//	       ├─────> state.New()        Library store
//	       ├─────> StartPoller()      Background status refresh
//	       ├─────> session.Resolve()  Startup auth probe (async)
//	       └─────> ui.Run()           Start TUI (blocks)
//
// The transport needs to expire the session on a dead refresh credential,
// and the session needs the client, which needs the transport. The cycle is
// broken by assigning Transport.OnAuthLost after the session exists.
//
// # Polling Behavior
//
// The poller ticks at a fixed interval (default 10 seconds) and refreshes
// the library only while some record is still pending or processing. The
// refresh is silent: no loading flag, and failures are dropped, because a
// missed background poll is not actionable by the user.
//
// # Logging
//
// The TUI owns stdout and stderr, so the zap logger writes to the file
// named by the config's log_path. If that file cannot be opened the app
// runs with a no-op logger rather than failing startup.
package app
