package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/domain"
)

// CapsuleService mints and consumes proof capsules: signed tokens whose
// only claim is "verification happened seconds ago". Each capsule's ID is
// held in a server-side single-use registry; consuming is an atomic
// check-and-delete, so a capsule passes the gate at most once no matter
// how the carrying cookie is replayed.
type CapsuleService struct {
	secret   string
	ttl      time.Duration
	registry domain.CapsuleRegistry
	now      func() time.Time
}

func NewCapsuleService(secret string, ttl time.Duration, registry domain.CapsuleRegistry) *CapsuleService {
	return &CapsuleService{
		secret:   secret,
		ttl:      ttl,
		registry: registry,
		now:      time.Now,
	}
}

// Mint issues a fresh capsule and registers its ID for single use.
func (s *CapsuleService) Mint(ctx context.Context) (string, error) {
	id := uuid.NewString()
	now := s.now()

	claims := jwt.RegisteredClaims{
		ID:        id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return "", err
	}

	if err := s.registry.Register(ctx, id, s.ttl); err != nil {
		return "", err
	}

	return token, nil
}

// Consume validates the capsule and spends it. Any failure — bad
// signature, expiry, an already-spent ID, or a registry error — answers
// false: the gate stays locked.
func (s *CapsuleService) Consume(ctx context.Context, token string) bool {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid || claims.ID == "" {
		return false
	}

	ok, err := s.registry.Consume(ctx, claims.ID)
	if err != nil {
		return false
	}

	return ok
}

// TTL returns the capsule lifetime, used to bound the cookie expiry.
func (s *CapsuleService) TTL() time.Duration {
	return s.ttl
}
