package redirect

import (
	"fmt"
	"strings"
)

// Redirect maps a source path to a destination path. ID is the encoded form of
// From used as the remote resource key.
type Redirect struct {
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
	ID    string `json:"id,omitempty"`
	Links *Links `json:"links,omitempty"`
}

// Links carries the hypermedia links the API attaches to list items.
type Links struct {
	Self Link `json:"self"`
}

// Link is a single hypermedia link.
type Link struct {
	Href string `json:"href"`
	ID   string `json:"id"`
}

// WithFrom returns a copy of r with From set.
func (r Redirect) WithFrom(from string) Redirect {
	r.From = from
	return r
}

// WithID returns a copy of r whose ID is derived from From.
func (r Redirect) WithID() Redirect {
	r.ID = EncodeID(r.From)
	return r
}

// CheckID verifies that a non-empty ID decodes to exactly From.
func (r Redirect) CheckID() error {
	if r.ID == "" {
		return nil
	}
	decoded, err := DecodeID(r.ID)
	if err != nil {
		return err
	}
	if decoded != r.From {
		return fmt.Errorf("id %q decodes to %q, not %q", r.ID, decoded, r.From)
	}
	return nil
}

// Redirects is one page of a cursor-paginated listing.
type Redirects struct {
	Count        int        `json:"count"`
	RedirectList []Redirect `json:"items"`
	Cursor       string     `json:"cursor"`
	NextCursor   string     `json:"next_cursor"`
	TotalCount   int        `json:"total_count"`
}

// HasMore reports whether NextCursor points at another page. The API signals
// the end of the collection with an empty cursor or "0".
func (r Redirects) HasMore() bool {
	return r.NextCursor != "" && r.NextCursor != "0"
}

// SameCursor reports whether two cursors name the same page. The first page
// may be requested with no cursor and echoed back as "0".
func SameCursor(a, b string) bool {
	return firstPageCursor(a) == firstPageCursor(b)
}

func firstPageCursor(c string) string {
	if c = strings.TrimSpace(c); c == "" {
		return "0"
	}
	return c
}

// RedirectResponse is the envelope earlier API revisions wrapped a single
// redirect in.
type RedirectResponse struct {
	ID   string   `json:"id"`
	Next Redirect `json:"next"`
}

// Redirect unwraps the envelope, carrying the outer id over when the inner
// redirect has none.
func (r RedirectResponse) Redirect() Redirect {
	out := r.Next
	if out.ID == "" {
		out.ID = r.ID
	}
	return out
}

// PageQuery selects a page of redirects. Empty fields are left to the server
// defaults.
type PageQuery struct {
	Count  string
	Cursor string
}

// HelloResponse mirrors the deprecated /hello endpoint.
type HelloResponse struct {
	Message string `json:"message"`
}

// HealthStatus mirrors the payload returned by /health.
type HealthStatus struct {
	Status    string            `json:"status"`
	Version   map[string]string `json:"version,omitempty"`
	Uptime    int64             `json:"uptime,omitempty"`
	StartTime string            `json:"start_time,omitempty"`
	Checks    []HealthCheck     `json:"checks,omitempty"`
}

// HealthCheck reports a single dependency check from /health.
type HealthCheck struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

// OK reports whether the API considers itself healthy.
func (h HealthStatus) OK() bool {
	return h.Status == "OK"
}
