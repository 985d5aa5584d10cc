// Package cache provides pluggable byte caches for derived artifacts:
// rendered previews and validation reports, keyed by document content
// hash. Backends cover local CLI usage (file), server deployments
// (Redis), and disabled caching (null).
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte store with optional expiry. A miss is (nil, false, nil);
// errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Hash computes the SHA-256 content hash of a serialized document.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// RenderKey keys a rendered preview by document hash and output format.
func RenderKey(docHash, format string) string {
	return "render:" + format + ":" + docHash
}

// ReportKey keys a validation report by document hash.
func ReportKey(docHash string) string {
	return "report:" + docHash
}
