package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/domain"
	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/service"
)

func RegisterRoutes(app *fiber.App, h *StepUpHandler, tokens service.TokenVerifier, users domain.UserStore) {
	auth := RequireAuth(tokens, users)

	app.Get("/verify", auth, h.VerifyForm)
	app.Post("/verify/pin", auth, h.VerifyPin)

	api := app.Group("/api/v1", auth)
	api.Post("/webauthn/registration-options", h.RegistrationOptions)
	api.Post("/webauthn/registration-complete", h.RegistrationComplete)
	api.Post("/webauthn/assertion-options", h.AssertionOptions)
	api.Post("/webauthn/assertion-complete", h.AssertionComplete)
	api.Get("/webauthn/credentials", h.ListCredentials)
	api.Delete("/webauthn/credentials/:id", h.DeleteCredential)
	api.Put("/stepup/pin", h.SetPin)
}
