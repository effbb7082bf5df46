package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/repository/memory"
)

const capsuleSecret = "test-capsule-secret"

func newCapsuleFixture(t *testing.T) (*CapsuleService, *time.Time) {
	t.Helper()

	now := time.Now()
	clock := func() time.Time { return now }

	s := NewCapsuleService(capsuleSecret, 10*time.Second, memory.NewCapsuleRegistry(clock))
	s.now = clock

	return s, &now
}

func TestCapsuleService_MintAndConsume(t *testing.T) {
	s, _ := newCapsuleFixture(t)
	ctx := context.Background()

	token, err := s.Mint(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.True(t, s.Consume(ctx, token))
}

func TestCapsuleService_SingleUse(t *testing.T) {
	s, _ := newCapsuleFixture(t)
	ctx := context.Background()

	token, err := s.Mint(ctx)
	require.NoError(t, err)

	require.True(t, s.Consume(ctx, token))
	assert.False(t, s.Consume(ctx, token), "a spent capsule must not pass again")
}

func TestCapsuleService_Expired(t *testing.T) {
	s, now := newCapsuleFixture(t)
	ctx := context.Background()

	token, err := s.Mint(ctx)
	require.NoError(t, err)

	*now = now.Add(11 * time.Second)

	assert.False(t, s.Consume(ctx, token))
}

func TestCapsuleService_Garbage(t *testing.T) {
	s, _ := newCapsuleFixture(t)

	assert.False(t, s.Consume(context.Background(), "not-a-token"))
	assert.False(t, s.Consume(context.Background(), ""))
}

func TestCapsuleService_WrongSignature(t *testing.T) {
	s, _ := newCapsuleFixture(t)

	claims := jwt.RegisteredClaims{
		ID:        "forged-id",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(10 * time.Second)),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	assert.False(t, s.Consume(context.Background(), forged))
}

func TestCapsuleService_UnregisteredID(t *testing.T) {
	s, _ := newCapsuleFixture(t)

	// Correctly signed but never minted here: the registry has no record
	// of the ID, so the capsule is refused.
	claims := jwt.RegisteredClaims{
		ID:        "never-registered",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(10 * time.Second)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(capsuleSecret))
	require.NoError(t, err)

	assert.False(t, s.Consume(context.Background(), token))
}
