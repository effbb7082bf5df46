package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/domain"
	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/dto"
	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/service"
	autherror "github.com/AnthoniusHendriyanto/stepup-service/internal/errors"
)

type StepUpHandler struct {
	webauthnService *service.WebAuthnService
	pinVerifier     *service.PinVerifier
	capsuleService  *service.CapsuleService
	users           domain.UserStore
}

func NewStepUpHandler(webauthnService *service.WebAuthnService, pinVerifier *service.PinVerifier,
	capsuleService *service.CapsuleService, users domain.UserStore) *StepUpHandler {
	return &StepUpHandler{
		webauthnService: webauthnService,
		pinVerifier:     pinVerifier,
		capsuleService:  capsuleService,
		users:           users,
	}
}

func (h *StepUpHandler) RegistrationOptions(c *fiber.Ctx) error {
	user := principal(c)

	options, err := h.webauthnService.RegistrationOptions(c.Context(), user)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(options)
}

func (h *StepUpHandler) RegistrationComplete(c *fiber.Ctx) error {
	user := principal(c)

	var input dto.RegistrationCompleteInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	cred, err := h.webauthnService.ValidateRegistration(c.Context(), user, input.AttestationResponse, input.DeviceName)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"message":     "Biometric credential registered successfully!",
		"credential":  cred.ID,
		"device_name": cred.DeviceName,
	})
}

func (h *StepUpHandler) AssertionOptions(c *fiber.Ctx) error {
	user := principal(c)

	options, err := h.webauthnService.AuthenticationOptions(c.Context(), user)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(options)
}

// AssertionComplete finishes the authentication ceremony; success mints a
// proof capsule so the pending redirect back into the protected module
// can pass the gate exactly once.
func (h *StepUpHandler) AssertionComplete(c *fiber.Ctx) error {
	user := principal(c)

	var input dto.AssertionCompleteInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	newCount, err := h.webauthnService.ValidateAuthentication(c.Context(), user, input.AssertionResponse)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	if err := h.issueCapsule(c); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "failed to issue proof capsule",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"message":    "Biometric unlock successful!",
		"sign_count": newCount,
	})
}

func (h *StepUpHandler) ListCredentials(c *fiber.Ctx) error {
	user := principal(c)

	creds, err := h.webauthnService.ListCredentials(c.Context(), user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	out := make([]dto.CredentialOutput, 0, len(creds))
	for _, cred := range creds {
		out = append(out, dto.CredentialOutput{
			ID:         cred.ID,
			DeviceName: cred.DeviceName,
			SignCount:  cred.SignCounter,
			CreatedAt:  cred.CreatedAt,
		})
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *StepUpHandler) DeleteCredential(c *fiber.Ctx) error {
	user := principal(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid credential id"})
	}

	if err := h.webauthnService.RemoveCredential(c.Context(), id, user.ID); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, autherror.ErrChallengeExpired),
		errors.Is(err, autherror.ErrVerificationFailed),
		errors.Is(err, autherror.ErrNoCredentials):
		return fiber.StatusBadRequest
	case errors.Is(err, autherror.ErrCredentialNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, autherror.ErrDuplicateCredential):
		return fiber.StatusConflict
	case errors.Is(err, autherror.ErrPinLocked):
		return fiber.StatusTooManyRequests
	case errors.Is(err, autherror.ErrInvalidPin):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}
