package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/redirectctl/internal/redirect"
)

// Snapshot represents the latest page of redirects available to the UI.
type Snapshot struct {
	Page                redirect.Redirects
	HasPage             bool
	Cursor              string
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored page. When err is non-nil the previous page is
// kept but the error is recorded for visibility.
func (s *Store) Update(page *redirect.Redirects, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if page != nil {
		s.snapshot.Page = clonePage(*page)
		s.snapshot.Cursor = page.Cursor
		s.snapshot.HasPage = true
	} else {
		s.snapshot.Page = redirect.Redirects{}
		s.snapshot.Cursor = ""
		s.snapshot.HasPage = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Page = clonePage(s.snapshot.Page)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func clonePage(page redirect.Redirects) redirect.Redirects {
	dup := page
	if len(page.RedirectList) == 0 {
		dup.RedirectList = nil
		return dup
	}
	dup.RedirectList = make([]redirect.Redirect, len(page.RedirectList))
	for i, item := range page.RedirectList {
		if item.Links != nil {
			links := *item.Links
			item.Links = &links
		}
		dup.RedirectList[i] = item
	}
	return dup
}
