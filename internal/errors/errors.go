package errors

import (
	"errors"
)

var (
	ErrChallengeExpired    = errors.New("challenge expired or missing")
	ErrCredentialNotFound  = errors.New("credential not found")
	ErrDuplicateCredential = errors.New("credential already registered")
	ErrVerificationFailed  = errors.New("verification failed")
	ErrNoCredentials       = errors.New("no registered credentials")
	ErrPinLocked           = errors.New("too many failed PIN attempts")
	ErrInvalidPin          = errors.New("invalid PIN")
	ErrUserNotFound        = errors.New("user not found")
)
