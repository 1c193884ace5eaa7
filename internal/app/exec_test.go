package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/redirectctl/internal/redirect"
	"github.com/five82/redirectctl/internal/redirect/redirecttest"
)

func execEnv(t *testing.T) (*redirecttest.Server, Options) {
	t.Helper()
	srv := redirecttest.NewServer("tok")
	t.Cleanup(srv.Close)

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("REDIRECT_API_URL", srv.URL)
	t.Setenv("SERVICE_AUTH_TOKEN", "tok")
	t.Setenv("REDIRECTCTL_LOG_LEVEL", "")

	return srv, Options{
		ConfigPath: filepath.Join(home, "missing.toml"),
		Stderr:     io.Discard,
	}
}

func TestExec_PutGetDelete(t *testing.T) {
	srv, opts := execEnv(t)
	ctx := context.Background()
	var out bytes.Buffer

	if err := Exec(ctx, opts, []string{"put", "/old", "/new"}, &out); err != nil {
		t.Fatalf("put returned error: %v", err)
	}
	if got := out.String(); got != "saved /old -> /new\n" {
		t.Fatalf("put output = %q", got)
	}
	if to, ok := srv.Lookup("/old"); !ok || to != "/new" {
		t.Fatalf("stored %q, %v", to, ok)
	}

	out.Reset()
	if err := Exec(ctx, opts, []string{"get", "/old"}, &out); err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	var got redirect.Redirect
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("get output %q is not JSON: %v", out.String(), err)
	}
	if got.From != "/old" || got.To != "/new" {
		t.Fatalf("get = %#v", got)
	}

	out.Reset()
	if err := Exec(ctx, opts, []string{"delete", "/old"}, &out); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	if out.String() != "deleted /old\n" || srv.Len() != 0 {
		t.Fatalf("delete output = %q, store len = %d", out.String(), srv.Len())
	}

	err := Exec(ctx, opts, []string{"get", "/old"}, &out)
	if !errors.Is(err, redirect.ErrNotFound) {
		t.Fatalf("get after delete error = %v, want ErrNotFound", err)
	}
}

func TestExec_DeleteByID(t *testing.T) {
	srv, opts := execEnv(t)
	srv.Seed(redirect.Redirect{From: "/x", To: "/y"})

	var out bytes.Buffer
	if err := Exec(context.Background(), opts, []string{"delete", "-id", redirect.EncodeID("/x")}, &out); err != nil {
		t.Fatalf("delete -id returned error: %v", err)
	}
	if srv.Len() != 0 {
		t.Fatalf("store len = %d, want 0", srv.Len())
	}
}

func TestExec_ListPageAndAll(t *testing.T) {
	srv, opts := execEnv(t)
	srv.Seed(
		redirect.Redirect{From: "/a", To: "/1"},
		redirect.Redirect{From: "/b", To: "/2"},
		redirect.Redirect{From: "/c", To: "/3"},
	)
	ctx := context.Background()

	var out bytes.Buffer
	if err := Exec(ctx, opts, []string{"list", "-count", "2"}, &out); err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	var page redirect.Redirects
	if err := json.Unmarshal(out.Bytes(), &page); err != nil {
		t.Fatalf("list output is not JSON: %v", err)
	}
	if len(page.RedirectList) != 2 || page.NextCursor != "2" {
		t.Fatalf("page = %#v", page)
	}

	out.Reset()
	if err := Exec(ctx, opts, []string{"list", "-all", "-count", "1"}, &out); err != nil {
		t.Fatalf("list -all returned error: %v", err)
	}
	var items []redirect.Redirect
	if err := json.Unmarshal(out.Bytes(), &items); err != nil {
		t.Fatalf("list -all output is not JSON: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("list -all returned %d items, want 3", len(items))
	}
}

func TestExec_HelloAndHealth(t *testing.T) {
	_, opts := execEnv(t)
	ctx := context.Background()

	var out bytes.Buffer
	if err := Exec(ctx, opts, []string{"hello"}, &out); err != nil {
		t.Fatalf("hello returned error: %v", err)
	}
	if !strings.Contains(out.String(), `"message"`) {
		t.Fatalf("hello output = %q", out.String())
	}

	out.Reset()
	if err := Exec(ctx, opts, []string{"health"}, &out); err != nil {
		t.Fatalf("health returned error: %v", err)
	}
	if !strings.Contains(out.String(), `"status": "OK"`) {
		t.Fatalf("health output = %q", out.String())
	}
}

func TestExec_UsageErrors(t *testing.T) {
	_, opts := execEnv(t)
	ctx := context.Background()

	cases := [][]string{
		nil,
		{"frobnicate"},
		{"get"},
		{"get", "/a", "/b"},
		{"put", "/a"},
		{"delete"},
		{"list", "extra"},
		{"list", "-all", "-cursor", "3"},
		{"list", "-bogus"},
		{"hello", "x"},
	}
	for _, args := range cases {
		err := Exec(ctx, opts, args, io.Discard)
		if !errors.Is(err, ErrUsage) {
			t.Fatalf("Exec(%q) error = %v, want ErrUsage", args, err)
		}
	}
}

func TestExec_APIErrorsAreNotUsage(t *testing.T) {
	srv, opts := execEnv(t)
	srv.FailNext(500)

	err := Exec(context.Background(), opts, []string{"list"}, io.Discard)
	if err == nil || errors.Is(err, ErrUsage) {
		t.Fatalf("Exec error = %v, want non-usage api error", err)
	}
	if redirect.StatusOf(err) != 500 {
		t.Fatalf("StatusOf = %d, want 500", redirect.StatusOf(err))
	}
}

func TestExec_InvalidBaseURL(t *testing.T) {
	_, opts := execEnv(t)
	t.Setenv("REDIRECT_API_URL", "{{}}")

	err := Exec(context.Background(), opts, []string{"hello"}, io.Discard)
	if !errors.Is(err, redirect.ErrInvalidBaseURI) {
		t.Fatalf("Exec error = %v, want ErrInvalidBaseURI", err)
	}
}
