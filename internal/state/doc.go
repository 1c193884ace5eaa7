// Package state provides thread-safe state management for the redirect browser.
//
// # Overview
//
// The background poller writes the most recently fetched page of redirects
// into a Store; the UI reads it back through Snapshot on its own tick.
//
//	Producer (Poller):             Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ GetRedirects() │            │                 │
//	│      ↓         │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	│      ↓         │  (mutex)   │      ↓          │
//	│  repeat...     │            │  render UI      │
//	└────────────────┘            └─────────────────┘
//
// # Update Semantics
//
//	// Success case: replace the page
//	store.Update(&page, nil)
//	→ snapshot.Page = page
//	→ snapshot.Cursor = page.Cursor
//	→ snapshot.LastError = nil
//
//	// Error case: keep the old page, record the error
//	store.Update(nil, err)
//	→ snapshot.Page = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// IsOffline reports true after two failures in a row.
//
// # Copying
//
// Update and Snapshot both copy the item slice and each item's links, so the
// UI can never observe a page while the poller is replacing it.
//
// The zero Store is ready to use.
package state
