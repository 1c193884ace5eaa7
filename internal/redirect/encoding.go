package redirect

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeID returns the resource id for a redirect source path: the URL-safe,
// unpadded base64 encoding of from.
func EncodeID(from string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(from))
}

// DecodeID reverses EncodeID. Padded ids and ids using the standard alphabet
// are accepted as well, since older API revisions produced both.
func DecodeID(id string) (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(id), "=")
	if trimmed == "" {
		return "", fmt.Errorf("decode id %q: empty", id)
	}
	enc := base64.RawURLEncoding
	if strings.ContainsAny(trimmed, "+/") {
		enc = base64.RawStdEncoding
	}
	raw, err := enc.DecodeString(trimmed)
	if err != nil {
		return "", fmt.Errorf("decode id %q: %w", id, err)
	}
	return string(raw), nil
}
