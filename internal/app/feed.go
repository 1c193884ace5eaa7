package app

import (
	"context"
	"sync"

	"github.com/five82/redirectctl/internal/redirect"
)

// Feed tracks which page of redirects the browser is showing. The UI moves the
// cursor; the poller fetches whatever page the cursor points at.
type Feed struct {
	lister redirect.PageLister
	count  string

	mu     sync.Mutex
	cursor string

	wake chan struct{}
}

// NewFeed returns a Feed starting at the first page. A pageSize of zero lets
// the API pick its default.
func NewFeed(lister redirect.PageLister, pageSize int) *Feed {
	return &Feed{
		lister: lister,
		count:  pageCount(pageSize),
		wake:   make(chan struct{}, 1),
	}
}

// Cursor returns the cursor of the page being shown.
func (f *Feed) Cursor() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cursor
}

// SetCursor moves to another page and asks the poller to fetch it now.
func (f *Feed) SetCursor(cursor string) {
	f.mu.Lock()
	f.cursor = cursor
	f.mu.Unlock()
	f.Refresh()
}

// Refresh asks the poller to fetch the current page without waiting for the
// next tick. It never blocks.
func (f *Feed) Refresh() {
	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// fetch requests the current page and returns the cursor it asked for.
func (f *Feed) fetch(ctx context.Context) (redirect.Redirects, string, error) {
	cursor := f.Cursor()
	page, err := f.lister.GetRedirects(ctx, redirect.PageQuery{Count: f.count, Cursor: cursor})
	return page, cursor, err
}
