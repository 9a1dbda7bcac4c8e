package middleware

import (
	"net/http"
	"strings"

	"loopedin/internal/entities"

	"github.com/gofiber/fiber/v2"
)

// TokenVerifier validates a session token and returns the caller identity.
type TokenVerifier interface {
	Verify(token string) (userID int64, isAdmin bool, err error)
}

const sessionKey = "session"

// RequireAuth validates the bearer token and stores the session in locals.
func RequireAuth(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return c.Status(http.StatusUnauthorized).SendString("missing bearer token")
		}

		userID, isAdmin, err := tokens.Verify(token)
		if err != nil {
			return c.Status(http.StatusUnauthorized).SendString("invalid session token")
		}

		c.Locals(sessionKey, entities.Session{UserID: userID, IsAdmin: isAdmin})
		return c.Next()
	}
}

// RequireAdmin rejects callers without the privilege flag. Must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !SessionFrom(c).IsAdmin {
			return c.Status(http.StatusForbidden).SendString("admin privilege required")
		}
		return c.Next()
	}
}

// SessionFrom extracts the authenticated session set by RequireAuth.
func SessionFrom(c *fiber.Ctx) entities.Session {
	s, _ := c.Locals(sessionKey).(entities.Session)
	return s
}
