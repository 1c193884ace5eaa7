// Package redirecttest provides an in-memory fake of the redirect API for
// tests. It speaks the same wire contract as the real service: base64 ids in
// the path, cursor pagination over the stored keys, and 201/200 upserts.
package redirecttest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/five82/redirectctl/internal/redirect"
)

const (
	defaultCount    = 10
	headerRequestID = "X-Request-Id"
)

// RecordedRequest captures a request the fake server received.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// Server is a fake redirect API backed by a map.
type Server struct {
	*httptest.Server

	token string

	mu        sync.Mutex
	store     map[string]string
	requests  []RecordedRequest
	failNext  int
	helloText string
}

// NewServer starts a fake API that accepts the given service token, either
// raw or as a bearer credential. Close it with Close.
func NewServer(token string) *Server {
	s := &Server{
		token:     token,
		store:     make(map[string]string),
		helloText: "hello there",
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

// Seed stores redirects directly, bypassing the API.
func (s *Server) Seed(redirects ...redirect.Redirect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range redirects {
		s.store[r.From] = r.To
	}
}

// Lookup returns the destination stored for from.
func (s *Server) Lookup(from string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	to, ok := s.store[from]
	return to, ok
}

// Len returns the number of stored redirects.
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.store)
}

// FailNext makes the next request answer with status and an empty body.
func (s *Server) FailNext(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = status
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, or false if none arrived.
func (s *Server) LastRequest() (RecordedRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)

	r.Get("/health", s.health)
	r.Group(func(r chi.Router) {
		r.Use(s.authorize)
		r.Get("/hello", s.hello)
		r.Get("/v1/redirects", s.listRedirects)
		r.Get("/v1/redirects/{id}", s.getRedirect)
		r.Put("/v1/redirects/{id}", s.putRedirect)
		r.Delete("/v1/redirects/{id}", s.deleteRedirect)
	})
	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     body,
		})
		status := s.failNext
		s.failNext = 0
		s.mu.Unlock()

		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)

		if status != 0 {
			w.WriteHeader(status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if s.token != "" && got != s.token {
			http.Error(w, "unauthorised", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, redirect.HealthStatus{
		Status:  "OK",
		Version: map[string]string{"version": "test"},
	})
}

func (s *Server) hello(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, redirect.HelloResponse{Message: s.helloText})
}

func (s *Server) getRedirect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	from, err := redirect.DecodeID(id)
	if err != nil {
		http.Error(w, "invalid base64 id", http.StatusBadRequest)
		return
	}
	to, ok := s.Lookup(from)
	if !ok {
		http.Error(w, "key "+from+" not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, redirect.Redirect{From: from, To: to})
}

func (s *Server) listRedirects(w http.ResponseWriter, r *http.Request) {
	count := defaultCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "the count must be a positive integer", http.StatusBadRequest)
			return
		}
		count = n
	}
	cursor := r.URL.Query().Get("cursor")
	if cursor == "" {
		cursor = "0"
	}
	offset, err := strconv.Atoi(cursor)
	if err != nil || offset < 0 {
		http.Error(w, "the redirects cursor was invalid", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	keys := make([]string, 0, len(s.store))
	for k := range s.store {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	page := redirect.Redirects{
		Count:        count,
		Cursor:       cursor,
		NextCursor:   "0",
		TotalCount:   len(keys),
		RedirectList: []redirect.Redirect{},
	}
	end := min(offset+count, len(keys))
	for i := offset; i < end; i++ {
		from := keys[i]
		id := redirect.EncodeID(from)
		page.RedirectList = append(page.RedirectList, redirect.Redirect{
			From: from,
			To:   s.store[from],
			ID:   id,
			Links: &redirect.Links{Self: redirect.Link{
				Href: s.URL + "/v1/redirects/" + id,
				ID:   id,
			}},
		})
	}
	s.mu.Unlock()

	if end < len(keys) {
		page.NextCursor = strconv.Itoa(end)
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) putRedirect(w http.ResponseWriter, r *http.Request) {
	from, err := redirect.DecodeID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid base64 id", http.StatusBadRequest)
		return
	}
	var payload redirect.Redirect
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	switch {
	case payload.From != from:
		http.Error(w, "'from' field does not match base64-decoded 'id' in the URL", http.StatusBadRequest)
		return
	case !relativePath(payload.From) || !relativePath(payload.To):
		http.Error(w, "'from' and 'to' must be relative paths starting with '/'", http.StatusBadRequest)
		return
	case payload.From == payload.To:
		http.Error(w, "'from' and 'to' cannot be the same", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	_, existed := s.store[from]
	s.store[from] = payload.To
	s.mu.Unlock()

	if existed {
		w.WriteHeader(http.StatusOK)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) deleteRedirect(w http.ResponseWriter, r *http.Request) {
	from, err := redirect.DecodeID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid base64 id", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	_, ok := s.store[from]
	delete(s.store, from)
	s.mu.Unlock()

	if !ok {
		http.Error(w, "redirect not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func relativePath(path string) bool {
	return strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
