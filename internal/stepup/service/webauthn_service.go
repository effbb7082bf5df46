package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/domain"
	autherror "github.com/AnthoniusHendriyanto/stepup-service/internal/errors"
	"github.com/AnthoniusHendriyanto/stepup-service/pkg/constant"
)

// WebAuthnService orchestrates registration and authentication
// ceremonies. Each ceremony is two-phase: an options call that parks a
// challenge in the cache, and a completion call that consumes it.
type WebAuthnService struct {
	creds        domain.CredentialStore
	challenges   domain.ChallengeCache
	verifier     Fido2Verifier
	challengeTTL time.Duration
}

func NewWebAuthnService(creds domain.CredentialStore, challenges domain.ChallengeCache,
	verifier Fido2Verifier, challengeTTL time.Duration) *WebAuthnService {
	return &WebAuthnService{
		creds:        creds,
		challenges:   challenges,
		verifier:     verifier,
		challengeTTL: challengeTTL,
	}
}

// RegistrationOptions generates creation options excluding every
// credential the user already holds, and parks the challenge. A second
// call before completion replaces the pending challenge.
func (s *WebAuthnService) RegistrationOptions(ctx context.Context, user *domain.User) (json.RawMessage, error) {
	existing, err := s.creds.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	options, session, err := s.verifier.RegistrationOptions(user, existing)
	if err != nil {
		return nil, err
	}

	if err := s.challenges.Put(ctx, user.ID, domain.PurposeRegistration, session, s.challengeTTL); err != nil {
		return nil, err
	}

	return options, nil
}

// ValidateRegistration completes the registration ceremony. The pending
// challenge is consumed up front, so a failed verification never leaves a
// reusable challenge behind.
func (s *WebAuthnService) ValidateRegistration(ctx context.Context, user *domain.User,
	response []byte, deviceName string) (*domain.Credential, error) {
	session, err := s.challenges.TakeIfValid(ctx, user.ID, domain.PurposeRegistration)
	if err != nil {
		return nil, err
	}

	result, err := s.verifier.VerifyAttestation(user, session, response)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", autherror.ErrVerificationFailed, err.Error())
	}

	// Credential IDs are globally unique, so the probe spans all users.
	exists, err := s.creds.ExistsByCredentialID(ctx, result.CredentialID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, autherror.ErrDuplicateCredential
	}

	if deviceName == "" {
		deviceName = constant.DefaultDeviceName
	}

	cred := &domain.Credential{
		UserID:       user.ID,
		CredentialID: result.CredentialID,
		PublicKey:    result.PublicKey,
		SignCounter:  result.SignCount,
		CreatedAt:    time.Now().UTC(),
		DeviceName:   deviceName,
	}

	if err := s.creds.Create(ctx, cred); err != nil {
		return nil, err
	}

	return cred, nil
}

// AuthenticationOptions generates assertion options listing the user's
// credentials as allowed, and parks the challenge.
func (s *WebAuthnService) AuthenticationOptions(ctx context.Context, user *domain.User) (json.RawMessage, error) {
	existing, err := s.creds.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, autherror.ErrNoCredentials
	}

	options, session, err := s.verifier.AuthenticationOptions(user, existing)
	if err != nil {
		return nil, err
	}

	if err := s.challenges.Put(ctx, user.ID, domain.PurposeAuthentication, session, s.challengeTTL); err != nil {
		return nil, err
	}

	return options, nil
}

// ValidateAuthentication completes the authentication ceremony and
// persists the advanced sign counter. A counter that fails to move
// forward is a probable cloned authenticator: the attempt is rejected and
// the stored counter stays untouched.
func (s *WebAuthnService) ValidateAuthentication(ctx context.Context, user *domain.User,
	response []byte) (uint32, error) {
	session, err := s.challenges.TakeIfValid(ctx, user.ID, domain.PurposeAuthentication)
	if err != nil {
		return 0, err
	}

	credentialID, err := s.verifier.AssertionCredentialID(response)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", autherror.ErrVerificationFailed, err.Error())
	}

	stored, err := s.creds.GetByCredentialID(ctx, user.ID, credentialID)
	if err != nil {
		return 0, err
	}

	allowed, err := s.creds.GetByUserID(ctx, user.ID)
	if err != nil {
		return 0, err
	}

	result, err := s.verifier.VerifyAssertion(user, allowed, session, response)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", autherror.ErrVerificationFailed, err.Error())
	}
	if result.CloneWarning {
		log.Printf("warn: sign counter regression for user %s, credential %d", user.ID, stored.ID)
		return 0, fmt.Errorf("%w: sign counter regression", autherror.ErrVerificationFailed)
	}

	if err := s.creds.UpdateSignCount(ctx, stored.ID, result.NewSignCount); err != nil {
		return 0, err
	}

	return result.NewSignCount, nil
}

// ListCredentials returns the user's registered credentials, newest first.
func (s *WebAuthnService) ListCredentials(ctx context.Context, userID string) ([]domain.Credential, error) {
	return s.creds.GetByUserID(ctx, userID)
}

// RemoveCredential deletes a credential owned by the given user. Removal
// of another user's credential is reported as not found.
func (s *WebAuthnService) RemoveCredential(ctx context.Context, id int, userID string) error {
	deleted, err := s.creds.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return autherror.ErrCredentialNotFound
	}

	log.Printf("biometric device removed: user=%s credential=%d", userID, id)

	return nil
}
