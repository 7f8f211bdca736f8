// Package idempotency deduplicates mutating requests by client-supplied
// request id. A repeat of the same request id with the same body within
// the retention window is rejected; the same id with a different body is
// treated as a new request and overwrites the stored entry.
package idempotency

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

// ErrDuplicateRequest indicates the same request id and body were seen
// within the retention window.
var ErrDuplicateRequest = errors.New("duplicate request")

type entry struct {
	hash      string
	expiresAt time.Time
}

// Guard is an in-memory request deduplicator. Entries live for a fixed
// TTL from last registration. Safe for concurrent use.
type Guard struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewGuard creates a guard retaining entries for ttl.
func NewGuard(ttl time.Duration) *Guard {
	return &Guard{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Register records (requestID, bodyHash). It returns ErrDuplicateRequest
// when an unexpired entry with the same id and hash exists. A matching
// id with a different hash replaces the entry and is not a duplicate,
// so a client may reuse a request id for a genuinely different payload.
func (g *Guard) Register(requestID, bodyHash string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.pruneLocked(now)

	if e, ok := g.entries[requestID]; ok && now.Before(e.expiresAt) && e.hash == bodyHash {
		return ErrDuplicateRequest
	}

	g.entries[requestID] = entry{
		hash:      bodyHash,
		expiresAt: now.Add(g.ttl),
	}
	return nil
}

// Len reports the number of retained entries, expired ones included
// until the next Register prunes them.
func (g *Guard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}

func (g *Guard) pruneLocked(now time.Time) {
	for id, e := range g.entries {
		if !now.Before(e.expiresAt) {
			delete(g.entries, id)
		}
	}
}

// BodyHash returns the hex-encoded SHA-256 digest of a request body.
func BodyHash(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
