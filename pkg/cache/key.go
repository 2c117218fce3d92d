package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Key identifies a cached report API response. The report endpoints are
// POST-driven, so the request body participates in the key.
type Key struct {
	// URL is the full request URL.
	URL string

	// Body is the request body (nil for GET requests).
	Body []byte
}

// String generates a deterministic cache key string.
// Format: oip:<path-and-query>:<sha256(body)[:16]>
func (k Key) String() string {
	endpoint := k.URL
	if i := strings.Index(endpoint, "://"); i >= 0 {
		endpoint = endpoint[i+3:]
		if j := strings.Index(endpoint, "/"); j >= 0 {
			endpoint = endpoint[j:]
		}
	}

	parts := []string{"oip", endpoint}
	if len(k.Body) > 0 {
		sum := sha256.Sum256(k.Body)
		parts = append(parts, hex.EncodeToString(sum[:8]))
	}
	return strings.Join(parts, ":")
}
