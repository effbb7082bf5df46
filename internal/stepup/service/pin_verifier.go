package service

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/domain"
	autherror "github.com/AnthoniusHendriyanto/stepup-service/internal/errors"
)

// PinVerifier validates submitted PINs against the stored bcrypt hash,
// consulting the lockout tracker before touching the hash at all.
type PinVerifier struct {
	lockouts    domain.LockoutTracker
	maxAttempts int
}

func NewPinVerifier(lockouts domain.LockoutTracker, maxAttempts int) *PinVerifier {
	return &PinVerifier{lockouts: lockouts, maxAttempts: maxAttempts}
}

// Verify checks the submitted PIN. The returned remaining count is only
// meaningful alongside ErrInvalidPin. A locked user never consumes an
// attempt; a correct PIN resets the window. A user without a configured
// PIN walks the same failure path as a wrong PIN so the two cases are
// indistinguishable from outside.
func (v *PinVerifier) Verify(ctx context.Context, user *domain.User, submittedPin string) (int, error) {
	locked, err := v.lockouts.IsLocked(ctx, user.ID)
	if err != nil {
		return 0, err
	}
	if locked {
		return 0, autherror.ErrPinLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte(submittedPin)) != nil {
		count, err := v.lockouts.RecordFailure(ctx, user.ID)
		if err != nil {
			return 0, err
		}

		log.Printf("warn: failed PIN attempt for user %s (%d/%d)", user.ID, count, v.maxAttempts)

		remaining := v.maxAttempts - count
		if remaining < 0 {
			remaining = 0
		}
		return remaining, autherror.ErrInvalidPin
	}

	if err := v.lockouts.Reset(ctx, user.ID); err != nil {
		return 0, err
	}

	return v.maxAttempts, nil
}
