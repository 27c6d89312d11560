package middleware

import (
	"errors"
	"strings"

	"libraryhub/internal/config"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/jwt"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the auth middleware
const (
	LocalUserID = "userID"
	LocalRole   = "role"
)

// Protected requires a valid bearer token and, when roles are given, one of those roles
func Protected(cfg *config.Config, roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Read bearer token
		accessToken := bearerToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 2. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 3. Set user info in context
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)

		// 4. Check role
		if len(roles) > 0 && !hasRole(claims.Role, roles) {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}

		return c.Next()
	}
}

// CurrentUserID returns the authenticated user's id
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(LocalUserID).(uint)
	return id, ok
}

func hasRole(role string, allowed []domain.Role) bool {
	for _, r := range allowed {
		if role == string(r) {
			return true
		}
	}
	return false
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}
