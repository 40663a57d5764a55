package auth

import (
	"sync"
	"time"
)

// RevocationList remembers logged-out session token ids until the tokens
// would have expired anyway.
type RevocationList struct {
	mu      sync.RWMutex
	entries map[string]time.Time // jti -> token expiry
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

// NewRevocationList starts a background sweep of expired entries every
// interval. Call Close to stop it.
func NewRevocationList(interval time.Duration) *RevocationList {
	l := &RevocationList{
		entries: make(map[string]time.Time),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	if interval > 0 {
		go l.sweepLoop(interval)
	}
	return l
}

func (l *RevocationList) Revoke(jti string, expiresAt time.Time) {
	if jti == "" {
		return
	}
	l.mu.Lock()
	l.entries[jti] = expiresAt
	l.mu.Unlock()
}

func (l *RevocationList) IsRevoked(jti string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.entries[jti]
	return ok
}

func (l *RevocationList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func (l *RevocationList) Close() {
	l.once.Do(func() { close(l.done) })
}

func (l *RevocationList) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

func (l *RevocationList) sweep() {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for jti, exp := range l.entries {
		if now.After(exp) {
			delete(l.entries, jti)
		}
	}
}
