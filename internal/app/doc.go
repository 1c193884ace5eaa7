// Package app wires configuration, the redirect client, polling and the UI
// together. It is the composition root for redirectctl.
//
// # Components
//
//   - app.go: Run, which starts the interactive browser
//   - feed.go: Feed, the cursor the browser is looking at
//   - poller.go: Background refresh with exponential backoff
//   - exec.go: Exec, the one-shot get/list/put/delete/hello/health commands
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        Read config.toml + env
//	       ├─────> logging.NewFile()    JSON log file
//	       ├─────> redirect.NewClient() HTTP client (closed on exit)
//	       ├─────> NewFeed()            Cursor shared with the UI
//	       ├─────> StartPoller()        Background refresh
//	       └─────> ui.Run()             Bubble Tea program (blocks)
//
// # Polling Behavior
//
// The poller fetches the feed's current page every interval (default 5s).
// Each consecutive failure doubles the wait, up to 30 seconds. Moving the
// cursor or pressing refresh in the UI wakes the poller immediately.
// Failures are recorded in the store and logged; polling never stops until
// the context is cancelled.
//
// # Commands
//
// Exec prints JSON for get, list, hello and health, and a one-line
// confirmation for put and delete. Malformed input returns an error wrapping
// ErrUsage so the caller can pick a distinct exit code.
package app
