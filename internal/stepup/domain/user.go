package domain

import "time"

// User is the slice of the identity subsystem's user record this core
// needs: who the principal is, whether step-up is enforced for them, and
// the PIN hash for the fallback path. Login itself is owned elsewhere.
type User struct {
	ID            string
	Email         string
	Name          string
	StepUpEnabled bool
	PinHash       string
}

// Credential is a registered WebAuthn credential. CredentialID is unique
// across all users; SignCounter only ever moves forward.
type Credential struct {
	ID           int
	UserID       string
	CredentialID []byte
	PublicKey    []byte
	SignCounter  uint32
	CreatedAt    time.Time
	DeviceName   string
}

// ChallengePurpose distinguishes the two ceremony slots a user can hold.
// At most one pending challenge exists per (user, purpose); requesting a
// new one silently replaces the old.
type ChallengePurpose string

const (
	PurposeRegistration   ChallengePurpose = "registration"
	PurposeAuthentication ChallengePurpose = "authentication"
)
