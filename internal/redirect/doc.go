// Package redirect provides an HTTP client for the redirect API.
//
// # Overview
//
// The redirect API stores mappings from a source path on the website to a
// destination path. This package wraps its endpoints behind a typed client:
// single lookups, cursor-paged listing, upserts and deletes, plus the
// /hello and /health checks used by smoke tests.
//
// # Architecture
//
//   - client.go: Client, Redirector, request construction and status checks
//   - types.go: Data structures mirroring the API schema
//   - encoding.go: Path to id conversion
//   - errors.go: Error kinds and sentinels
//   - pager.go: Walk, which follows next_cursor across pages
//
// The redirecttest subpackage holds an in-memory fake of the API.
//
// # Client Usage
//
//	client, err := redirect.NewClient("http://localhost:29900", token)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	r, err := client.GetRedirect(ctx, "/economy/old-path")
//	if errors.Is(err, redirect.ErrNotFound) {
//		// no redirect for that path
//	}
//
//	err = client.PutRedirect(ctx, redirect.Redirect{From: "/a", To: "/b"})
//
// # Identifiers
//
// A redirect is addressed by its source path encoded as URL-safe base64
// without padding. EncodeID produces that form; DecodeID also accepts padded
// and standard-alphabet ids.
//
// # Authentication
//
// Reads send the service token as-is in the Authorization header. Writes and
// /hello send "Bearer <token>". /health is unauthenticated.
//
// # Error Handling
//
// Failures carry a *Error with a Kind:
//
//   - KindInvalidArgument: rejected before any request was sent
//   - KindBadRequest, KindNotFound: a 400 or 404 from a read
//   - KindAPI: any other unexpected status, including 404 from delete
//
// Status failures read "the redirect api returned a 500 response for <url>
// (expected 200)". Transport and context errors are returned unchanged, so
// errors.Is(err, context.DeadlineExceeded) works as usual.
//
// # Thread Safety
//
// Client is safe for concurrent use. Close releases idle connections and
// makes later calls fail with ErrClientClosed.
package redirect
