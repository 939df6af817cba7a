package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"okultedarik/internal/models"
)

// ActorKey is the c.Locals key holding the authenticated models.Actor.
const ActorKey = "actor"

// TokenValidator resolves a bearer token to the actor it was issued to.
type TokenValidator interface {
	ValidateToken(token string) (models.Actor, error)
}

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(tokens TokenValidator, log *zap.Logger) fiber.Handler {
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

		actor, err := tokens.ValidateToken(parts[1])
		if err != nil {
			log.Debug("jwt validation failed", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		c.Locals(ActorKey, actor)
		return c.Next()
	}
}

// RequireType rejects actors whose type is not one of types. It must run after AuthRequired.
func RequireType(types ...models.ActorType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFrom(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		}
		for _, t := range types {
			if actor.Type == t {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You do not have access to this resource",
		})
	}
}

// ActorFrom returns the actor stored by AuthRequired.
func ActorFrom(c *fiber.Ctx) (models.Actor, bool) {
	actor, ok := c.Locals(ActorKey).(models.Actor)
	return actor, ok
}
