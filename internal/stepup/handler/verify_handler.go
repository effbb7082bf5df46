package handler

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/dto"
	autherror "github.com/AnthoniusHendriyanto/stepup-service/internal/errors"
	"github.com/AnthoniusHendriyanto/stepup-service/pkg/constant"
)

var pinPattern = regexp.MustCompile(`^\d{4}$|^\d{6}$`)

// VerifyForm renders the verification entry point. The browser lands
// here whenever the gate bounces a protected-module request.
func (h *StepUpHandler) VerifyForm(c *fiber.Ctx) error {
	return h.renderVerifyForm(c, c.Query("returnUrl"), "")
}

// VerifyPin handles the PIN fallback submission. Success mints a proof
// capsule and sends the browser back to where it was headed; any failure
// re-renders the form and mints nothing.
func (h *StepUpHandler) VerifyPin(c *fiber.Ctx) error {
	user := principal(c)

	var input dto.VerifyPinInput
	if err := c.BodyParser(&input); err != nil {
		return h.renderVerifyForm(c, "", "Invalid input.")
	}

	returnURL := safeReturnURL(input.ReturnURL)

	if !user.StepUpEnabled {
		return c.Redirect(returnURL, fiber.StatusFound)
	}

	remaining, err := h.pinVerifier.Verify(c.Context(), user, input.Pin)
	switch {
	case err == nil:
		if err := h.issueCapsule(c); err != nil {
			return h.renderVerifyForm(c, returnURL, "Verification failed, please try again.")
		}
		return c.Redirect(returnURL, fiber.StatusFound)
	case errors.Is(err, autherror.ErrPinLocked):
		return h.renderVerifyForm(c, returnURL, "Too many failed attempts. Please try again later.")
	case errors.Is(err, autherror.ErrInvalidPin):
		return h.renderVerifyForm(c, returnURL,
			fmt.Sprintf("Invalid PIN. %d attempts remaining.", remaining))
	default:
		return h.renderVerifyForm(c, returnURL, "Verification is unavailable right now.")
	}
}

// SetPin configures or replaces the user's step-up PIN and turns
// enforcement on.
func (h *StepUpHandler) SetPin(c *fiber.Ctx) error {
	user := principal(c)

	var input dto.SetPinInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if !pinPattern.MatchString(input.Pin) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "PIN must be 4 or 6 digits"})
	}
	if input.Pin != input.ConfirmPin {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "PINs do not match"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Pin), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to set PIN"})
	}

	if err := h.users.UpdatePin(c.Context(), user.ID, string(hashed), true); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (h *StepUpHandler) issueCapsule(c *fiber.Ctx) error {
	token, err := h.capsuleService.Mint(c.Context())
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     constant.CapsuleCookieName,
		Value:    token,
		MaxAge:   int(h.capsuleService.TTL().Seconds()),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return nil
}

func (h *StepUpHandler) renderVerifyForm(c *fiber.Ctx, returnURL, errorMessage string) error {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><title>Verify</title></head><body>`)
	b.WriteString(`<h1>Re-verify to continue</h1>`)
	if errorMessage != "" {
		b.WriteString(`<p class="error">` + html.EscapeString(errorMessage) + `</p>`)
	}
	b.WriteString(`<form method="post" action="/verify/pin">`)
	b.WriteString(`<input type="password" name="pin" inputmode="numeric" autocomplete="one-time-code" autofocus>`)
	b.WriteString(`<input type="hidden" name="returnUrl" value="` + html.EscapeString(returnURL) + `">`)
	b.WriteString(`<button type="submit">Unlock</button>`)
	b.WriteString(`</form>`)
	b.WriteString(`<p><a href="#" id="use-passkey">Use biometric unlock instead</a></p>`)
	b.WriteString(`</body></html>`)

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(b.String())
}

// safeReturnURL keeps redirects on-site: only relative paths survive.
func safeReturnURL(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "/"
	}
	return raw
}
