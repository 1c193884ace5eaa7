package redirect

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestError_MatchesSentinelsByKind(t *testing.T) {
	cases := []struct {
		kind     Kind
		sentinel error
	}{
		{KindInvalidArgument, ErrInvalidArgument},
		{KindBadRequest, ErrBadRequest},
		{KindNotFound, ErrNotFound},
		{KindAPI, ErrAPI},
	}
	for _, tc := range cases {
		err := fmt.Errorf("wrapped: %w", &Error{Kind: tc.kind})
		if !errors.Is(err, tc.sentinel) {
			t.Fatalf("errors.Is(%v, %v) = false, want true", tc.kind, tc.sentinel)
		}
		if KindOf(err) != tc.kind {
			t.Fatalf("KindOf = %v, want %v", KindOf(err), tc.kind)
		}
	}
	if errors.Is(&Error{Kind: KindAPI}, ErrNotFound) {
		t.Fatalf("KindAPI error should not match ErrNotFound")
	}
}

func TestKindOfAndStatusOf_NonAPIErrors(t *testing.T) {
	plain := errors.New("plain")
	if KindOf(plain) != KindUnknown {
		t.Fatalf("KindOf(plain) = %v, want unknown", KindOf(plain))
	}
	if StatusOf(plain) != 0 {
		t.Fatalf("StatusOf(plain) = %d, want 0", StatusOf(plain))
	}
}

func TestStatusError_Message(t *testing.T) {
	err := statusError("get redirect", KindNotFound, http.StatusNotFound, http.StatusOK, "http://api/v1/redirects/L2E")
	want := "the redirect api returned a 404 response for http://api/v1/redirects/L2E (expected 200)"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
	if StatusOf(err) != http.StatusNotFound {
		t.Fatalf("StatusOf = %d, want 404", StatusOf(err))
	}
}

func TestStatusRule_Kinds(t *testing.T) {
	if readRule.kind(http.StatusBadRequest) != KindBadRequest {
		t.Fatalf("readRule 400 should be bad request")
	}
	if readRule.kind(http.StatusNotFound) != KindNotFound {
		t.Fatalf("readRule 404 should be not found")
	}
	if readRule.kind(http.StatusInternalServerError) != KindAPI {
		t.Fatalf("readRule 500 should be api error")
	}
	if deleteRule.kind(http.StatusNotFound) != KindAPI {
		t.Fatalf("deleteRule 404 should be api error")
	}
}

func TestKind_String(t *testing.T) {
	if KindNotFound.String() != "not found" || Kind(99).String() != "unknown" {
		t.Fatalf("unexpected kind strings: %q %q", KindNotFound, Kind(99))
	}
}
