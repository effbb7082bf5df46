package handler

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/domain"
	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/service"
	"github.com/AnthoniusHendriyanto/stepup-service/pkg/constant"
)

// RequireAuth resolves the principal from the bearer access token and
// loads the user record. Everything behind it can assume principal(c) is
// set.
func RequireAuth(tokens service.TokenVerifier, users domain.UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			// Browser navigations carry the token in a cookie instead.
			authHeader = "Bearer " + c.Cookies("access_token")
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or malformed token"})
		}

		claims, err := tokens.VerifyAccessToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}

		user, err := users.GetByID(c.Context(), claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unknown user"})
		}

		c.Locals(constant.PrincipalKey, user)

		return c.Next()
	}
}

// RequireStepUp is the gate every protected-module route sits behind.
// Users without step-up pass straight through. Everyone else needs a
// valid, unconsumed proof capsule; the capsule is spent the instant it is
// seen, so the next navigation re-triggers verification regardless of
// what the downstream handler does.
func (h *StepUpHandler) RequireStepUp(c *fiber.Ctx) error {
	user := principal(c)

	if !user.StepUpEnabled {
		return c.Next()
	}

	token := c.Cookies(constant.CapsuleCookieName)
	if token != "" {
		ok := h.capsuleService.Consume(c.Context(), token)
		clearCapsuleCookie(c)
		if ok {
			return c.Next()
		}
	}

	returnURL := c.OriginalURL()
	return c.Redirect(constant.VerifyPath+"?returnUrl="+url.QueryEscape(returnURL), fiber.StatusFound)
}

func principal(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(constant.PrincipalKey).(*domain.User)
	return user
}

func clearCapsuleCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     constant.CapsuleCookieName,
		Value:    "",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
