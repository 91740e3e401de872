package exts

import (
	"strings"

	"github.com/aperture-social/aperture/pkg/internal/security"
	"github.com/gofiber/fiber/v2"
)

// ContextAuth extracts the actor ID from the credential service's token when
// one is presented. It never rejects on its own; operations that require an
// actor call AuthedActor and fail with 401 themselves.
func ContextAuth(reader func() *security.TokenReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(fiber.HeaderAuthorization)
		token = strings.TrimPrefix(token, "Bearer ")
		if len(token) == 0 {
			token = c.Cookies("token")
		}

		if r := reader(); r != nil && len(token) > 0 {
			if actorID, err := r.ReadActor(token); err == nil {
				c.Locals("actorId", actorID)
			}
		}

		return c.Next()
	}
}

// AuthedActor returns the authenticated actor's account ID.
func AuthedActor(c *fiber.Ctx) (uint, error) {
	actorID, ok := c.Locals("actorId").(uint)
	if !ok {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "a valid actor token is required")
	}
	return actorID, nil
}
