package redirect

import (
	"context"
	"errors"
	"testing"
)

type fakeLister struct {
	pages   map[string]Redirects
	cursors []string
	err     error
}

func (f *fakeLister) GetRedirects(_ context.Context, query PageQuery) (Redirects, error) {
	f.cursors = append(f.cursors, query.Cursor)
	if f.err != nil {
		return Redirects{}, f.err
	}
	return f.pages[query.Cursor], nil
}

func TestWalk_FollowsCursorsUntilZero(t *testing.T) {
	lister := &fakeLister{pages: map[string]Redirects{
		"":  {RedirectList: []Redirect{{From: "/a"}, {From: "/b"}}, NextCursor: "2"},
		"2": {RedirectList: []Redirect{{From: "/c"}}, NextCursor: "0"},
	}}

	var froms []string
	err := Walk(context.Background(), lister, "2", func(r Redirect) error {
		froms = append(froms, r.From)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if len(froms) != 3 || froms[0] != "/a" || froms[2] != "/c" {
		t.Fatalf("visited %v, want [/a /b /c]", froms)
	}
	if len(lister.cursors) != 2 || lister.cursors[1] != "2" {
		t.Fatalf("cursors requested = %v, want [\"\" 2]", lister.cursors)
	}
}

func TestWalk_EmptyNextCursorEnds(t *testing.T) {
	lister := &fakeLister{pages: map[string]Redirects{
		"": {RedirectList: []Redirect{{From: "/a"}}},
	}}
	calls := 0
	if err := Walk(context.Background(), lister, "", func(Redirect) error { calls++; return nil }); err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if calls != 1 || len(lister.cursors) != 1 {
		t.Fatalf("calls=%d requests=%d, want 1 and 1", calls, len(lister.cursors))
	}
}

func TestWalk_DetectsCursorLoop(t *testing.T) {
	lister := &fakeLister{pages: map[string]Redirects{
		"":  {NextCursor: "5"},
		"5": {NextCursor: "5"},
	}}
	err := Walk(context.Background(), lister, "", func(Redirect) error { return nil })
	if !errors.Is(err, ErrCursorLoop) {
		t.Fatalf("Walk error = %v, want ErrCursorLoop", err)
	}
}

func TestWalk_StopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	lister := &fakeLister{pages: map[string]Redirects{
		"":  {RedirectList: []Redirect{{From: "/a"}, {From: "/b"}}, NextCursor: "2"},
		"2": {RedirectList: []Redirect{{From: "/c"}}, NextCursor: "0"},
	}}
	calls := 0
	err := Walk(context.Background(), lister, "", func(Redirect) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Fatalf("Walk err=%v calls=%d, want stop after one", err, calls)
	}
}

func TestWalk_PropagatesListerError(t *testing.T) {
	boom := &Error{Kind: KindAPI, Status: 500, Message: "boom"}
	lister := &fakeLister{err: boom}
	if err := Walk(context.Background(), lister, "", func(Redirect) error { return nil }); !errors.Is(err, ErrAPI) {
		t.Fatalf("Walk error = %v, want api error", err)
	}
}

func TestWalk_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	lister := &fakeLister{}
	if err := Walk(ctx, lister, "", func(Redirect) error { return nil }); !errors.Is(err, context.Canceled) {
		t.Fatalf("Walk error = %v, want context.Canceled", err)
	}
	if len(lister.cursors) != 0 {
		t.Fatalf("lister called %d times, want 0", len(lister.cursors))
	}
}
