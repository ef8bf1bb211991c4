package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"linguaplatform/backend/config"
	"linguaplatform/backend/models"
	"linguaplatform/backend/services"
	"linguaplatform/backend/utils"
)

const identityKey = "identity"

// UserLookup resolves the stored account behind a token.
type UserLookup interface {
	Get(ctx context.Context, email string) (models.User, error)
}

// AuthMiddleware rejects requests without a valid token and stores the
// caller's identity in the request locals. The role comes from the stored
// account, not the token, so role changes apply to tokens already issued.
func AuthMiddleware(cfg *config.Config, users UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := utils.ExtractIdentityFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		user, err := users.Get(c.UserContext(), id.Email)
		if errors.Is(err, services.ErrUserNotFound) || (err == nil && user.ID != id.UserID) {
			return utils.Unauthorized(c, "Unauthorized - account no longer exists")
		}
		if err != nil {
			RecordError(c, err)
			return utils.InternalServerError(c, "Failed to load account")
		}
		id.Role = user.Role
		c.Locals(identityKey, id)
		return c.Next()
	}
}

// RequireRole lets through callers whose role is at least min. It must run
// after AuthMiddleware.
func RequireRole(min models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := CurrentIdentity(c)
		if !ok {
			return utils.Unauthorized(c, "Unauthorized")
		}
		if !id.Role.AtLeast(min) {
			return utils.Forbidden(c, "Forbidden - "+string(min)+" access required")
		}
		return c.Next()
	}
}

// CurrentIdentity returns the identity stored by AuthMiddleware.
func CurrentIdentity(c *fiber.Ctx) (utils.Identity, bool) {
	id, ok := c.Locals(identityKey).(utils.Identity)
	return id, ok
}
