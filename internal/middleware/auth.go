package middleware

import (
	"errors"
	"strings"

	"museum-backend/internal/models"
	"museum-backend/internal/services"
	"museum-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const userKey = "user"

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated user in the request locals.
func RequireAuth(auth services.AuthService, log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthenticated.")
		}

		user, err := auth.Authenticate(c.UserContext(), strings.TrimSpace(token))
		if err != nil {
			if !errors.Is(err, services.ErrInvalidToken) {
				log.WithError(err).Error("Failed to authenticate request")
			}
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthenticated.")
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by RequireAuth.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}
