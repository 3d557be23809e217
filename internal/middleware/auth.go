package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"asn2ip/internal/models"
)

// Session keys written by the OIDC callback.
const (
	sessionUserSub   = "user_sub"
	sessionUserEmail = "user_email"
	sessionUserName  = "user_name"
	sessionRedirect  = "redirect_after_login"
)

// AuthMiddleware handles user authentication via sessions.
type AuthMiddleware struct{}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{}
}

// RequireAuth ensures the user is authenticated. API requests get a 401,
// browser requests are sent to the login page.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	user := userFromSession(c)
	if user == nil {
		if isAPIRequest(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status": "error",
				"error":  "authentication required",
			})
		}
		if sess := session.FromContext(c); sess != nil && c.Method() == fiber.MethodGet {
			sess.Set(sessionRedirect, c.OriginalURL())
		}
		return c.Redirect().To("/login")
	}

	c.Locals("user", user)
	return c.Next()
}

// OptionalAuth loads the user if authenticated, but doesn't require authentication.
func (m *AuthMiddleware) OptionalAuth(c fiber.Ctx) error {
	if user := userFromSession(c); user != nil {
		c.Locals("user", user)
	}
	return c.Next()
}

func userFromSession(c fiber.Ctx) *models.User {
	sess := session.FromContext(c)
	if sess == nil {
		return nil
	}

	sub, _ := sess.Get(sessionUserSub).(string)
	if sub == "" {
		return nil
	}
	email, _ := sess.Get(sessionUserEmail).(string)
	name, _ := sess.Get(sessionUserName).(string)

	return &models.User{Sub: sub, Email: email, Name: name}
}

func isAPIRequest(c fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}
