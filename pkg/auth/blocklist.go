package auth

import (
	"sync"
	"time"
)

// Blocklist remembers revoked token IDs until their natural expiry.
// Logout revokes the presented token; the middleware rejects revoked
// tokens even though their signature still verifies.
type Blocklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewBlocklist() *Blocklist {
	return &Blocklist{
		revoked: make(map[string]time.Time),
	}
}

// Revoke marks a token ID as unusable until expiresAt.
func (b *Blocklist) Revoke(tokenID string, expiresAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[tokenID] = expiresAt
	b.purge(time.Now())
}

// Revoked reports whether the token ID has been revoked and is still
// within its lifetime.
func (b *Blocklist) Revoked(tokenID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	expiresAt, ok := b.revoked[tokenID]
	if !ok {
		return false
	}
	if time.Now().After(expiresAt) {
		delete(b.revoked, tokenID)
		return false
	}
	return true
}

// Size returns the number of tracked revocations.
func (b *Blocklist) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.revoked)
}

func (b *Blocklist) purge(now time.Time) {
	for id, expiresAt := range b.revoked {
		if now.After(expiresAt) {
			delete(b.revoked, id)
		}
	}
}
