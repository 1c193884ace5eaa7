package redirect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Redirector defines the operations offered by the redirect API.
// This interface is implemented by *Client and can be used for testing.
type Redirector interface {
	GetRedirect(ctx context.Context, redirectID string) (Redirect, error)
	GetRedirects(ctx context.Context, query PageQuery) (Redirects, error)
	PutRedirect(ctx context.Context, payload Redirect) error
	PutRedirectWithID(ctx context.Context, id string, payload Redirect) error
	DeleteRedirect(ctx context.Context, from string) error
	DeleteRedirectByID(ctx context.Context, id string) error
	Close() error
}

// Ensure Client implements Redirector at compile time.
var _ Redirector = (*Client)(nil)

// Client talks to the redirect HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	token     string
	userAgent string
	requestID func() string
	closed    atomic.Bool
}

const (
	defaultUserAgent = "redirectctl/0.1"
	defaultTimeout   = 10 * time.Second

	redirectsPath = "/v1/redirects"
	helloPath     = "/hello"
	healthPath    = "/health"

	headerRequestID = "X-Request-Id"
)

// Option customises a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the default transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRequestIDs sets the generator for the X-Request-Id header. A nil
// generator disables the header.
func WithRequestIDs(gen func() string) Option {
	return func(c *Client) {
		c.requestID = gen
	}
}

// NewClient builds a Client for the API rooted at baseURI, authenticating with
// the given service token.
func NewClient(baseURI, token string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURI)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		token:     token,
		userAgent: defaultUserAgent,
		requestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root this client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Close releases idle connections held by the transport. Calls after the
// first are no-ops, and the client rejects further requests.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	if c.closed.CompareAndSwap(false, true) {
		c.http.CloseIdleConnections()
	}
	return nil
}

// GetRedirect fetches a single redirect by its source path.
func (c *Client) GetRedirect(ctx context.Context, redirectID string) (Redirect, error) {
	const op = "get redirect"
	if err := c.usable(); err != nil {
		return Redirect{}, err
	}
	if strings.TrimSpace(redirectID) == "" {
		return Redirect{}, invalidArgument(op, "redirect id is required")
	}
	id := EncodeID(redirectID)
	req, err := c.newRequest(ctx, http.MethodGet, redirectsPath+"/"+id, nil, nil)
	if err != nil {
		return Redirect{}, err
	}
	req.Header.Set("Authorization", c.token)

	var body redirectBody
	if err := c.send(req, op, readRule, &body); err != nil {
		return Redirect{}, err
	}
	out := body.resolve()
	if out.ID == "" {
		out.ID = id
	}
	// The body may omit from, so the caller's input is authoritative.
	return out.WithFrom(redirectID), nil
}

// GetRedirects fetches one page of redirects.
func (c *Client) GetRedirects(ctx context.Context, query PageQuery) (Redirects, error) {
	const op = "get redirects"
	if err := c.usable(); err != nil {
		return Redirects{}, err
	}
	req, err := c.newRequest(ctx, http.MethodGet, redirectsPath, query.values(), nil)
	if err != nil {
		return Redirects{}, err
	}
	req.Header.Set("Authorization", c.token)

	var page Redirects
	if err := c.send(req, op, readRule, &page); err != nil {
		return Redirects{}, err
	}
	return page, nil
}

// PutRedirect creates or replaces the redirect keyed by payload.From.
func (c *Client) PutRedirect(ctx context.Context, payload Redirect) error {
	if strings.TrimSpace(payload.From) == "" {
		return invalidArgument("put redirect", "redirect from path is required")
	}
	return c.PutRedirectWithID(ctx, EncodeID(payload.From), payload)
}

// PutRedirectWithID creates or replaces the redirect at a pre-encoded id. The
// id must decode to payload.From, and a non-empty payload.ID must agree with it.
func (c *Client) PutRedirectWithID(ctx context.Context, id string, payload Redirect) error {
	const op = "put redirect"
	if err := c.usable(); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return invalidArgument(op, "redirect id is required")
	}
	if err := payload.CheckID(); err != nil {
		return invalidArgument(op, err.Error())
	}
	from, err := DecodeID(id)
	if err != nil {
		return invalidArgument(op, err.Error())
	}
	if from != payload.From {
		return invalidArgument(op, fmt.Sprintf("id %q decodes to %q, not %q", id, from, payload.From))
	}
	if payload.ID == "" {
		payload.ID = id
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPut, redirectsPath+"/"+id, nil, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.bearer())
	req.Header.Set("Content-Type", "application/json")
	return c.send(req, op, putRule, nil)
}

// DeleteRedirect removes the redirect keyed by the source path from.
func (c *Client) DeleteRedirect(ctx context.Context, from string) error {
	if strings.TrimSpace(from) == "" {
		return invalidArgument("delete redirect", "redirect from path is required")
	}
	return c.DeleteRedirectByID(ctx, EncodeID(from))
}

// DeleteRedirectByID removes the redirect at a pre-encoded id.
func (c *Client) DeleteRedirectByID(ctx context.Context, id string) error {
	const op = "delete redirect"
	if err := c.usable(); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return invalidArgument(op, "redirect id is required")
	}
	req, err := c.newRequest(ctx, http.MethodDelete, redirectsPath+"/"+id, nil, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.bearer())
	return c.send(req, op, deleteRule, nil)
}

// Hello calls the /hello connectivity check. The endpoint is not part of the
// stable API and is only kept for smoke tests.
func (c *Client) Hello(ctx context.Context) (HelloResponse, error) {
	if err := c.usable(); err != nil {
		return HelloResponse{}, err
	}
	req, err := c.newRequest(ctx, http.MethodGet, helloPath, nil, nil)
	if err != nil {
		return HelloResponse{}, err
	}
	req.Header.Set("Authorization", c.bearer())

	var payload HelloResponse
	if err := c.send(req, "hello", okRule, &payload); err != nil {
		return HelloResponse{}, err
	}
	return payload, nil
}

// Health fetches the API health report.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	if err := c.usable(); err != nil {
		return HealthStatus{}, err
	}
	req, err := c.newRequest(ctx, http.MethodGet, healthPath, nil, nil)
	if err != nil {
		return HealthStatus{}, err
	}
	var payload HealthStatus
	if err := c.send(req, "health", okRule, &payload); err != nil {
		return HealthStatus{}, err
	}
	return payload, nil
}

// statusRule describes which statuses an operation accepts. When typed is set,
// 400 and 404 map to their own kinds instead of KindAPI.
type statusRule struct {
	expected int
	accepted []int
	typed    bool
}

var (
	readRule   = statusRule{expected: http.StatusOK, accepted: []int{http.StatusOK}, typed: true}
	putRule    = statusRule{expected: http.StatusCreated, accepted: []int{http.StatusOK, http.StatusCreated}}
	deleteRule = statusRule{expected: http.StatusNoContent, accepted: []int{http.StatusNoContent}}
	okRule     = statusRule{expected: http.StatusOK, accepted: []int{http.StatusOK}}
)

func (r statusRule) kind(status int) Kind {
	if r.typed {
		switch status {
		case http.StatusBadRequest:
			return KindBadRequest
		case http.StatusNotFound:
			return KindNotFound
		}
	}
	return KindAPI
}

// redirectBody accepts both the flat redirect shape and the older envelope
// that nests the redirect under "next".
type redirectBody struct {
	Redirect
	Next *Redirect `json:"next,omitempty"`
}

func (b redirectBody) resolve() Redirect {
	if b.Next == nil {
		return b.Redirect
	}
	return RedirectResponse{ID: b.ID, Next: *b.Next}.Redirect()
}

func (q PageQuery) values() url.Values {
	values := url.Values{}
	if count := strings.TrimSpace(q.Count); count != "" {
		values.Set("count", count)
	}
	if cursor := strings.TrimSpace(q.Cursor); cursor != "" {
		values.Set("cursor", cursor)
	}
	return values
}

func (c *Client) usable() error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if c.closed.Load() {
		return ErrClientClosed
	}
	return nil
}

func (c *Client) bearer() string {
	return "Bearer " + c.token
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	reqURL := *c.baseURL
	reqURL.Path = strings.TrimSuffix(c.baseURL.Path, "/") + path
	reqURL.RawPath = ""
	// url.Values.Encode sorts keys, which yields count before cursor.
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.requestID != nil {
		req.Header.Set(headerRequestID, c.requestID())
	}
	return req, nil
}

// send executes req and checks the response status against rule. dest, when
// non-nil, receives the decoded body of an accepted response. Transport errors
// are returned as-is.
func (c *Client) send(req *http.Request, op string, rule statusRule, dest any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !slices.Contains(rule.accepted, resp.StatusCode) {
		_, _ = io.Copy(io.Discard, resp.Body)
		return statusError(op, rule.kind(resp.StatusCode), resp.StatusCode, rule.expected, req.URL.String())
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(baseURI string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURI)
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidBaseURI, baseURI, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w %q: scheme and host are required", ErrInvalidBaseURI, baseURI)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
