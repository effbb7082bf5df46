package dto

import (
	"encoding/json"
	"time"
)

type RegistrationCompleteInput struct {
	// AttestationResponse is the raw PublicKeyCredential JSON produced by
	// navigator.credentials.create; its shape is owned by the WebAuthn
	// spec and passed through to the verifier untouched.
	AttestationResponse json.RawMessage `json:"attestation_response"`
	DeviceName          string          `json:"device_name"`
}

type AssertionCompleteInput struct {
	AssertionResponse json.RawMessage `json:"assertion_response"`
}

type CredentialOutput struct {
	ID         int       `json:"id"`
	DeviceName string    `json:"device_name"`
	SignCount  uint32    `json:"sign_count"`
	CreatedAt  time.Time `json:"created_at"`
}
