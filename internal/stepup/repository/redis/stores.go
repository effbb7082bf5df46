package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/domain"
	autherror "github.com/AnthoniusHendriyanto/stepup-service/internal/errors"
)

// recordFailureScript increments the per-user failure counter and starts
// the rolling window on the first failure. A single round trip keeps the
// increment atomic under concurrent wrong-PIN submissions.
var recordFailureScript = goredis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// ChallengeCache stores pending ceremony state with SET/GETDEL so a
// challenge can only ever be consumed once, and a re-request silently
// replaces whatever was pending.
type ChallengeCache struct {
	client goredis.UniversalClient
	prefix string
}

func NewChallengeCache(client goredis.UniversalClient, prefix string) *ChallengeCache {
	return &ChallengeCache{client: client, prefix: prefix}
}

func (c *ChallengeCache) key(userID string, purpose domain.ChallengePurpose) string {
	return fmt.Sprintf("%s:challenge:%s:%s", c.prefix, purpose, userID)
}

func (c *ChallengeCache) Put(ctx context.Context, userID string, purpose domain.ChallengePurpose, payload []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(userID, purpose), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store challenge: %w", err)
	}
	return nil
}

func (c *ChallengeCache) TakeIfValid(ctx context.Context, userID string, purpose domain.ChallengePurpose) ([]byte, error) {
	payload, err := c.client.GetDel(ctx, c.key(userID, purpose)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, autherror.ErrChallengeExpired
		}
		return nil, fmt.Errorf("failed to take challenge: %w", err)
	}
	return payload, nil
}

// LockoutTracker keeps the windowed failed-attempt counter.
type LockoutTracker struct {
	client      goredis.UniversalClient
	prefix      string
	maxAttempts int
	window      time.Duration
}

func NewLockoutTracker(client goredis.UniversalClient, prefix string, maxAttempts int, window time.Duration) *LockoutTracker {
	return &LockoutTracker{client: client, prefix: prefix, maxAttempts: maxAttempts, window: window}
}

func (t *LockoutTracker) key(userID string) string {
	return fmt.Sprintf("%s:pin_attempts:%s", t.prefix, userID)
}

func (t *LockoutTracker) RecordFailure(ctx context.Context, userID string) (int, error) {
	count, err := recordFailureScript.Run(ctx, t.client, []string{t.key(userID)}, t.window.Milliseconds()).Int()
	if err != nil {
		return 0, fmt.Errorf("failed to record pin failure: %w", err)
	}
	return count, nil
}

func (t *LockoutTracker) Reset(ctx context.Context, userID string) error {
	if err := t.client.Del(ctx, t.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to reset pin attempts: %w", err)
	}
	return nil
}

func (t *LockoutTracker) IsLocked(ctx context.Context, userID string) (bool, error) {
	count, err := t.client.Get(ctx, t.key(userID)).Int()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read pin attempts: %w", err)
	}
	return count >= t.maxAttempts, nil
}

// CapsuleRegistry is the single-use registry behind proof capsules.
// Consume is a GETDEL so exactly one request can ever spend a capsule.
type CapsuleRegistry struct {
	client goredis.UniversalClient
	prefix string
}

func NewCapsuleRegistry(client goredis.UniversalClient, prefix string) *CapsuleRegistry {
	return &CapsuleRegistry{client: client, prefix: prefix}
}

func (r *CapsuleRegistry) key(id string) string {
	return fmt.Sprintf("%s:capsule:%s", r.prefix, id)
}

func (r *CapsuleRegistry) Register(ctx context.Context, id string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(id), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to register capsule: %w", err)
	}
	return nil
}

func (r *CapsuleRegistry) Consume(ctx context.Context, id string) (bool, error) {
	err := r.client.GetDel(ctx, r.key(id)).Err()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to consume capsule: %w", err)
	}
	return true, nil
}
