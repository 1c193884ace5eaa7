package redirect

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestEncodeID_RoundTrips(t *testing.T) {
	paths := []string{
		"/",
		"/economy/old-path",
		"/a?b=c&d=e",
		"/ünïcødé/path",
		"/>>>???",
		strings.Repeat("/deep", 40),
	}
	for _, from := range paths {
		id := EncodeID(from)
		if strings.ContainsAny(id, "+/=") {
			t.Fatalf("EncodeID(%q) = %q, want URL-safe unpadded", from, id)
		}
		got, err := DecodeID(id)
		if err != nil {
			t.Fatalf("DecodeID(%q) returned error: %v", id, err)
		}
		if got != from {
			t.Fatalf("DecodeID(EncodeID(%q)) = %q", from, got)
		}
	}
}

func TestDecodeID_AcceptsPaddedAndStandardAlphabet(t *testing.T) {
	from := "/>>>???"
	for _, id := range []string{
		base64.StdEncoding.EncodeToString([]byte(from)),
		base64.URLEncoding.EncodeToString([]byte(from)),
		base64.RawStdEncoding.EncodeToString([]byte(from)),
	} {
		got, err := DecodeID(id)
		if err != nil {
			t.Fatalf("DecodeID(%q) returned error: %v", id, err)
		}
		if got != from {
			t.Fatalf("DecodeID(%q) = %q, want %q", id, got, from)
		}
	}
}

func TestDecodeID_RejectsGarbage(t *testing.T) {
	for _, id := range []string{"", "   ", "!!!", "a"} {
		if _, err := DecodeID(id); err == nil {
			t.Fatalf("DecodeID(%q) returned nil error, want error", id)
		}
	}
}
