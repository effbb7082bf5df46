package service

//go:generate mockgen -destination=../../mocks/mock_service.go -package=mocks github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/service Fido2Verifier,TokenVerifier

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"

	"github.com/AnthoniusHendriyanto/stepup-service/config"
	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/domain"
)

// AttestationResult is what a successful registration verification yields.
type AttestationResult struct {
	CredentialID []byte
	PublicKey    []byte
	SignCount    uint32
}

// AssertionResult is what a successful authentication verification yields.
// CloneWarning is set by the library when the reported sign counter did
// not move forward; callers must treat it as a failed verification.
type AssertionResult struct {
	CredentialID []byte
	NewSignCount uint32
	CloneWarning bool
}

// Fido2Verifier is the cryptographic WebAuthn primitive. Attestation and
// assertion checking (COSE/CBOR parsing, signature validation, counter
// policy) belong to the underlying library, not to this core.
type Fido2Verifier interface {
	RegistrationOptions(user *domain.User, exclude []domain.Credential) (options json.RawMessage, session []byte, err error)
	VerifyAttestation(user *domain.User, session, response []byte) (*AttestationResult, error)
	AuthenticationOptions(user *domain.User, allow []domain.Credential) (options json.RawMessage, session []byte, err error)
	// AssertionCredentialID extracts the credential ID a client response
	// claims to be signed with, without verifying anything.
	AssertionCredentialID(response []byte) ([]byte, error)
	VerifyAssertion(user *domain.User, creds []domain.Credential, session, response []byte) (*AssertionResult, error)
}

type goWebAuthnVerifier struct {
	wa *webauthn.WebAuthn
}

// NewFido2Verifier builds the go-webauthn backed verifier. Options ask
// the authenticator for user verification (PIN/biometric), not mere
// presence, and discourage resident keys: these credentials only re-prove
// presence for an already-identified principal.
func NewFido2Verifier(cfg *config.Config) (Fido2Verifier, error) {
	wa, err := webauthn.New(&webauthn.Config{
		RPID:          cfg.RPID,
		RPDisplayName: cfg.RPDisplayName,
		RPOrigins:     cfg.RPOrigins,
		AttestationPreference: protocol.PreferNoAttestation,
		AuthenticatorSelection: protocol.AuthenticatorSelection{
			UserVerification: protocol.VerificationRequired,
			ResidentKey:      protocol.ResidentKeyRequirementDiscouraged,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create webauthn instance: %w", err)
	}

	return &goWebAuthnVerifier{wa: wa}, nil
}

func (v *goWebAuthnVerifier) RegistrationOptions(user *domain.User, exclude []domain.Credential) (json.RawMessage, []byte, error) {
	u := &ceremonyUser{user: user, creds: exclude}

	exclusions := make([]protocol.CredentialDescriptor, len(exclude))
	for i, c := range exclude {
		exclusions[i] = protocol.CredentialDescriptor{
			Type:         protocol.PublicKeyCredentialType,
			CredentialID: c.CredentialID,
		}
	}

	creation, session, err := v.wa.BeginRegistration(u, webauthn.WithExclusions(exclusions))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin registration: %w", err)
	}

	return marshalOptions(creation, session)
}

func (v *goWebAuthnVerifier) VerifyAttestation(user *domain.User, session, response []byte) (*AttestationResult, error) {
	var sessionData webauthn.SessionData
	if err := json.Unmarshal(session, &sessionData); err != nil {
		return nil, fmt.Errorf("invalid session data: %w", err)
	}

	parsed, err := protocol.ParseCredentialCreationResponseBody(bytes.NewReader(response))
	if err != nil {
		return nil, err
	}

	cred, err := v.wa.CreateCredential(&ceremonyUser{user: user}, sessionData, parsed)
	if err != nil {
		return nil, err
	}

	return &AttestationResult{
		CredentialID: cred.ID,
		PublicKey:    cred.PublicKey,
		SignCount:    cred.Authenticator.SignCount,
	}, nil
}

func (v *goWebAuthnVerifier) AuthenticationOptions(user *domain.User, allow []domain.Credential) (json.RawMessage, []byte, error) {
	u := &ceremonyUser{user: user, creds: allow}

	assertion, session, err := v.wa.BeginLogin(u,
		webauthn.WithUserVerification(protocol.VerificationRequired))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin login: %w", err)
	}

	return marshalOptions(assertion, session)
}

func (v *goWebAuthnVerifier) AssertionCredentialID(response []byte) ([]byte, error) {
	parsed, err := protocol.ParseCredentialRequestResponseBody(bytes.NewReader(response))
	if err != nil {
		return nil, err
	}
	return parsed.RawID, nil
}

func (v *goWebAuthnVerifier) VerifyAssertion(user *domain.User, creds []domain.Credential, session, response []byte) (*AssertionResult, error) {
	var sessionData webauthn.SessionData
	if err := json.Unmarshal(session, &sessionData); err != nil {
		return nil, fmt.Errorf("invalid session data: %w", err)
	}

	parsed, err := protocol.ParseCredentialRequestResponseBody(bytes.NewReader(response))
	if err != nil {
		return nil, err
	}

	cred, err := v.wa.ValidateLogin(&ceremonyUser{user: user, creds: creds}, sessionData, parsed)
	if err != nil {
		return nil, err
	}

	return &AssertionResult{
		CredentialID: cred.ID,
		NewSignCount: cred.Authenticator.SignCount,
		CloneWarning: cred.Authenticator.CloneWarning,
	}, nil
}

func marshalOptions(options any, session *webauthn.SessionData) (json.RawMessage, []byte, error) {
	optJSON, err := json.Marshal(options)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal options: %w", err)
	}
	sessJSON, err := json.Marshal(session)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal session data: %w", err)
	}
	return optJSON, sessJSON, nil
}

// ceremonyUser adapts a domain user and their stored credentials to the
// webauthn.User interface the library operates on.
type ceremonyUser struct {
	user  *domain.User
	creds []domain.Credential
}

func (u *ceremonyUser) WebAuthnID() []byte {
	return []byte(u.user.ID)
}

func (u *ceremonyUser) WebAuthnName() string {
	if u.user.Email != "" {
		return u.user.Email
	}
	return u.user.ID
}

func (u *ceremonyUser) WebAuthnDisplayName() string {
	if u.user.Name != "" {
		return u.user.Name
	}
	return u.WebAuthnName()
}

func (u *ceremonyUser) WebAuthnCredentials() []webauthn.Credential {
	creds := make([]webauthn.Credential, len(u.creds))
	for i, c := range u.creds {
		creds[i] = webauthn.Credential{
			ID:        c.CredentialID,
			PublicKey: c.PublicKey,
			Authenticator: webauthn.Authenticator{
				SignCount: c.SignCounter,
			},
		}
	}
	return creds
}

func (u *ceremonyUser) WebAuthnIcon() string {
	return ""
}
