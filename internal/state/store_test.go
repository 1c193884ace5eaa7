package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/redirectctl/internal/redirect"
)

func samplePage() *redirect.Redirects {
	return &redirect.Redirects{
		Count:      2,
		Cursor:     "4",
		NextCursor: "6",
		TotalCount: 9,
		RedirectList: []redirect.Redirect{
			{From: "/a", To: "/b", Links: &redirect.Links{Self: redirect.Link{ID: "L2E"}}},
			{From: "/c", To: "/d"},
		},
	}
}

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.Update(samplePage(), nil)

	snap := s.Snapshot()
	if !snap.HasPage || snap.Page.TotalCount != 9 {
		t.Fatalf("snapshot page = %#v, want total=9 HasPage=true", snap.Page)
	}
	if snap.Cursor != "4" {
		t.Fatalf("Cursor = %q, want 4", snap.Cursor)
	}
	if len(snap.Page.RedirectList) != 2 || snap.Page.RedirectList[0].From != "/a" {
		t.Fatalf("snapshot items = %#v, want 2 items", snap.Page.RedirectList)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Page.RedirectList[0].From = "/mutated"
	snap.Page.RedirectList[0].Links.Self.ID = "changed"
	snap2 := s.Snapshot()
	if snap2.Page.RedirectList[0].From != "/a" {
		t.Fatalf("Snapshot should clone items; got %q want /a", snap2.Page.RedirectList[0].From)
	}
	if snap2.Page.RedirectList[0].Links.Self.ID != "L2E" {
		t.Fatalf("Snapshot should clone links; got %q", snap2.Page.RedirectList[0].Links.Self.ID)
	}
}

func TestStore_UpdateClonesInput(t *testing.T) {
	var s Store
	page := samplePage()
	s.Update(page, nil)

	page.RedirectList[1].To = "/mutated"
	if got := s.Snapshot().Page.RedirectList[1].To; got != "/d" {
		t.Fatalf("stored To = %q, want /d", got)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(samplePage(), nil)
	prev := s.Snapshot()

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if snap.HasPage != prev.HasPage || snap.Cursor != prev.Cursor {
		t.Fatalf("page changed on error: got %#v want %#v", snap, prev)
	}
	if len(snap.Page.RedirectList) != 2 {
		t.Fatalf("items changed on error: got %#v", snap.Page.RedirectList)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError should wrap the original error")
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_NilPageClears(t *testing.T) {
	var s Store
	s.Update(samplePage(), nil)
	s.Update(nil, nil)

	snap := s.Snapshot()
	if snap.HasPage || len(snap.Page.RedirectList) != 0 || snap.Cursor != "" {
		t.Fatalf("snapshot = %#v, want cleared page", snap)
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("fresh store: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(nil, errors.New("fail 1"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(nil, errors.New("fail 2"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	// Success resets counter
	s.Update(&redirect.Redirects{}, nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("after success: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}
}
