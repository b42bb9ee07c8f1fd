package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pixelvault/gamestore-api/internal/auth"
)

// claimsKey is the fiber.Ctx locals key holding the authenticated claims.
const claimsKey = "auth_claims"

// TokenParser verifies bearer tokens and returns their claims.
type TokenParser interface {
	Parse(tokenString string) (*auth.Claims, error)
}

// RequireAuth returns middleware that verifies the Authorization bearer
// token and stores the claims in the request locals.
func RequireAuth(tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false, "message": "missing bearer token",
			})
		}
		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false, "message": "invalid token",
			})
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// RequireRole returns middleware that rejects actors whose role is not in
// the required set. Must run after RequireAuth.
func RequireRole(required ...auth.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := ClaimsFrom(c)
		if claims == nil || !auth.Allowed(claims.Role, required...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false, "message": "forbidden",
			})
		}
		return c.Next()
	}
}

// ClaimsFrom returns the authenticated claims stored by RequireAuth, or
// nil when the request is unauthenticated.
func ClaimsFrom(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(claimsKey).(*auth.Claims)
	return claims
}
