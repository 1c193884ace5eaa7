package redirect

import (
	"context"
	"errors"
	"fmt"
)

// ErrCursorLoop is returned by Walk when the API hands back a cursor it has
// already returned.
var ErrCursorLoop = errors.New("redirect api repeated a cursor")

// PageLister is the subset of Redirector needed to page through redirects.
type PageLister interface {
	GetRedirects(ctx context.Context, query PageQuery) (Redirects, error)
}

// Walk visits every redirect, requesting count items per page and following
// next_cursor until the API reports the last page. It stops at the first error
// returned by fn.
func Walk(ctx context.Context, lister PageLister, count string, fn func(Redirect) error) error {
	seen := make(map[string]struct{})
	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		page, err := lister.GetRedirects(ctx, PageQuery{Count: count, Cursor: cursor})
		if err != nil {
			return err
		}
		for _, item := range page.RedirectList {
			if err := fn(item); err != nil {
				return err
			}
		}
		if !page.HasMore() {
			return nil
		}
		if _, dup := seen[page.NextCursor]; dup {
			return fmt.Errorf("%w: %q", ErrCursorLoop, page.NextCursor)
		}
		seen[page.NextCursor] = struct{}{}
		cursor = page.NextCursor
	}
}
