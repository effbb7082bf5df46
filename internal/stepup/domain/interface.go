package domain

//go:generate mockgen -destination=../../mocks/mock_domain.go -package=mocks github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/domain UserStore,CredentialStore,ChallengeCache,LockoutTracker,CapsuleRegistry

import (
	"context"
	"time"
)

type UserStore interface {
	GetByID(ctx context.Context, id string) (*User, error)
	UpdatePin(ctx context.Context, userID, pinHash string, enabled bool) error
}

type CredentialStore interface {
	Create(ctx context.Context, cred *Credential) error
	GetByUserID(ctx context.Context, userID string) ([]Credential, error)
	GetByCredentialID(ctx context.Context, userID string, credentialID []byte) (*Credential, error)
	// ExistsByCredentialID probes the whole table, not just one user's
	// rows: credential IDs are globally unique.
	ExistsByCredentialID(ctx context.Context, credentialID []byte) (bool, error)
	UpdateSignCount(ctx context.Context, id int, signCount uint32) error
	Delete(ctx context.Context, id int, userID string) (bool, error)
}

// ChallengeCache holds at most one pending ceremony per (user, purpose).
type ChallengeCache interface {
	// Put unconditionally overwrites any existing entry (last-writer-wins).
	Put(ctx context.Context, userID string, purpose ChallengePurpose, payload []byte, ttl time.Duration) error
	// TakeIfValid atomically reads and deletes the entry. Returns
	// errors.ErrChallengeExpired when the key is absent or the TTL lapsed.
	TakeIfValid(ctx context.Context, userID string, purpose ChallengePurpose) ([]byte, error)
}

// LockoutTracker counts failed PIN attempts inside a rolling window.
type LockoutTracker interface {
	RecordFailure(ctx context.Context, userID string) (int, error)
	Reset(ctx context.Context, userID string) error
	IsLocked(ctx context.Context, userID string) (bool, error)
}

// CapsuleRegistry is the server-side single-use registry for proof
// capsules. Consume must be an atomic check-and-delete so two concurrent
// requests cannot both pass the gate on one capsule.
type CapsuleRegistry interface {
	Register(ctx context.Context, id string, ttl time.Duration) error
	Consume(ctx context.Context, id string) (bool, error)
}
