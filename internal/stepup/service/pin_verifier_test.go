package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/domain"
	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/repository/memory"
	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/service"
	autherror "github.com/AnthoniusHendriyanto/stepup-service/internal/errors"
)

const lockoutWindow = 15 * time.Minute

func pinUser(t *testing.T, pin string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	require.NoError(t, err)

	return &domain.User{
		ID:            "user-123",
		StepUpEnabled: true,
		PinHash:       string(hash),
	}
}

func TestPinVerifier_CorrectPin(t *testing.T) {
	lockouts := memory.NewLockoutTracker(5, lockoutWindow, nil)
	v := service.NewPinVerifier(lockouts, 5)
	user := pinUser(t, "123456")

	remaining, err := v.Verify(context.Background(), user, "123456")

	require.NoError(t, err)
	assert.Equal(t, 5, remaining)
}

func TestPinVerifier_WrongPinCountsDown(t *testing.T) {
	lockouts := memory.NewLockoutTracker(5, lockoutWindow, nil)
	v := service.NewPinVerifier(lockouts, 5)
	user := pinUser(t, "123456")
	ctx := context.Background()

	remaining, err := v.Verify(ctx, user, "000000")
	assert.ErrorIs(t, err, autherror.ErrInvalidPin)
	assert.Equal(t, 4, remaining)

	remaining, err = v.Verify(ctx, user, "000000")
	assert.ErrorIs(t, err, autherror.ErrInvalidPin)
	assert.Equal(t, 3, remaining)
}

func TestPinVerifier_LockoutAfterMaxFailures(t *testing.T) {
	lockouts := memory.NewLockoutTracker(5, lockoutWindow, nil)
	v := service.NewPinVerifier(lockouts, 5)
	user := pinUser(t, "123456")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := v.Verify(ctx, user, "000000")
		assert.ErrorIs(t, err, autherror.ErrInvalidPin)
	}

	// Even the correct PIN is refused while locked.
	_, err := v.Verify(ctx, user, "123456")
	assert.ErrorIs(t, err, autherror.ErrPinLocked)
}

func TestPinVerifier_LockoutWindowLapses(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	lockouts := memory.NewLockoutTracker(5, lockoutWindow, clock)
	v := service.NewPinVerifier(lockouts, 5)
	user := pinUser(t, "123456")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := v.Verify(ctx, user, "000000")
		assert.ErrorIs(t, err, autherror.ErrInvalidPin)
	}

	_, err := v.Verify(ctx, user, "123456")
	assert.ErrorIs(t, err, autherror.ErrPinLocked)

	now = now.Add(lockoutWindow + time.Second)

	remaining, err := v.Verify(ctx, user, "123456")
	require.NoError(t, err)
	assert.Equal(t, 5, remaining)
}

func TestPinVerifier_SuccessResetsCounter(t *testing.T) {
	lockouts := memory.NewLockoutTracker(5, lockoutWindow, nil)
	v := service.NewPinVerifier(lockouts, 5)
	user := pinUser(t, "123456")
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := v.Verify(ctx, user, "000000")
		assert.ErrorIs(t, err, autherror.ErrInvalidPin)
	}

	_, err := v.Verify(ctx, user, "123456")
	require.NoError(t, err)

	// The slate is clean: a fresh failure starts the count over.
	remaining, err := v.Verify(ctx, user, "000000")
	assert.ErrorIs(t, err, autherror.ErrInvalidPin)
	assert.Equal(t, 4, remaining)
}

func TestPinVerifier_NoConfiguredPin(t *testing.T) {
	lockouts := memory.NewLockoutTracker(5, lockoutWindow, nil)
	v := service.NewPinVerifier(lockouts, 5)
	user := &domain.User{ID: "user-123", StepUpEnabled: true}

	// Same failure path as a wrong PIN, attempt consumed and all.
	remaining, err := v.Verify(context.Background(), user, "123456")
	assert.ErrorIs(t, err, autherror.ErrInvalidPin)
	assert.Equal(t, 4, remaining)
}
