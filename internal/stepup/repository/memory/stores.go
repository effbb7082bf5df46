// Package memory provides in-process implementations of the ephemeral
// stores. Intended for development and tests; the clock is injectable so
// TTL behavior can be driven deterministically.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/domain"
	autherror "github.com/AnthoniusHendriyanto/stepup-service/internal/errors"
)

type entry struct {
	payload   []byte
	expiresAt time.Time
}

// ChallengeCache is an in-memory ChallengeCache.
type ChallengeCache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewChallengeCache(now func() time.Time) *ChallengeCache {
	if now == nil {
		now = time.Now
	}
	return &ChallengeCache{
		entries: make(map[string]entry),
		now:     now,
	}
}

func challengeKey(userID string, purpose domain.ChallengePurpose) string {
	return fmt.Sprintf("%s:%s", purpose, userID)
}

func (c *ChallengeCache) Put(ctx context.Context, userID string, purpose domain.ChallengePurpose, payload []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[challengeKey(userID, purpose)] = entry{
		payload:   payload,
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

func (c *ChallengeCache) TakeIfValid(ctx context.Context, userID string, purpose domain.ChallengePurpose) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := challengeKey(userID, purpose)
	e, ok := c.entries[key]
	if !ok {
		return nil, autherror.ErrChallengeExpired
	}
	delete(c.entries, key)

	if c.now().After(e.expiresAt) {
		return nil, autherror.ErrChallengeExpired
	}
	return e.payload, nil
}

type attemptWindow struct {
	count     int
	expiresAt time.Time
}

// LockoutTracker is an in-memory LockoutTracker.
type LockoutTracker struct {
	mu          sync.Mutex
	windows     map[string]attemptWindow
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

func NewLockoutTracker(maxAttempts int, window time.Duration, now func() time.Time) *LockoutTracker {
	if now == nil {
		now = time.Now
	}
	return &LockoutTracker{
		windows:     make(map[string]attemptWindow),
		maxAttempts: maxAttempts,
		window:      window,
		now:         now,
	}
}

func (t *LockoutTracker) RecordFailure(ctx context.Context, userID string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, ok := t.windows[userID]
	if !ok || t.now().After(w.expiresAt) {
		w = attemptWindow{count: 0, expiresAt: t.now().Add(t.window)}
	}
	w.count++
	t.windows[userID] = w

	return w.count, nil
}

func (t *LockoutTracker) Reset(ctx context.Context, userID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.windows, userID)
	return nil
}

func (t *LockoutTracker) IsLocked(ctx context.Context, userID string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, ok := t.windows[userID]
	if !ok || t.now().After(w.expiresAt) {
		return false, nil
	}
	return w.count >= t.maxAttempts, nil
}

// CapsuleRegistry is an in-memory CapsuleRegistry.
type CapsuleRegistry struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewCapsuleRegistry(now func() time.Time) *CapsuleRegistry {
	if now == nil {
		now = time.Now
	}
	return &CapsuleRegistry{
		entries: make(map[string]time.Time),
		now:     now,
	}
}

func (r *CapsuleRegistry) Register(ctx context.Context, id string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[id] = r.now().Add(ttl)
	return nil
}

func (r *CapsuleRegistry) Consume(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	expiresAt, ok := r.entries[id]
	if !ok {
		return false, nil
	}
	delete(r.entries, id)

	if r.now().After(expiresAt) {
		return false, nil
	}
	return true, nil
}
