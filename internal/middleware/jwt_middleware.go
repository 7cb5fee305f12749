package middleware

import (
	"log"
	"strings"

	"shopx/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthRequired.
const (
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// AuthRequired is a Fiber middleware that checks for a valid identity token
// and stores the caller's id and role in the request context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.VerifyToken(parts[1])
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(RoleKey, claims.Role)

		return c.Next()
	}
}

// RequireRoles limits a route to callers holding one of the given roles.
// It must run after AuthRequired.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(RoleKey).(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "You are not authorized to perform this action",
		})
	}
}

// CallerID returns the authenticated user id stored by AuthRequired.
func CallerID(c *fiber.Ctx) int {
	id, _ := c.Locals(UserIDKey).(int)
	return id
}

// CallerRole returns the authenticated role stored by AuthRequired.
func CallerRole(c *fiber.Ctx) string {
	role, _ := c.Locals(RoleKey).(string)
	return role
}
