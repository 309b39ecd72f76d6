package handlers

import (
	"errors"

	"museum-backend/internal/middleware"
	"museum-backend/internal/requests"
	"museum-backend/internal/services"
	"museum-backend/internal/utils"
	"museum-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	service services.AuthService
	logger  *logrus.Logger
}

func NewAuthHandler(service services.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// AcquireToken godoc
// @Summary Acquire a bearer token for a mobile device
// @Tags mobile
// @Accept json
// @Produce json
// @Param body body object true "{email, password, device_name}"
// @Success 201 {object} utils.DataResponse
// @Failure 422 {object} utils.ValidationErrorResponse
// @Failure 429 {object} utils.ErrorResponseBody
// @Router /mobile/acquire-token [post]
func (h *AuthHandler) AcquireToken(c *fiber.Ctx) error {
	values, err := validate(c, requests.AcquireToken(), validation.Options{})
	if err != nil {
		return fail(c, h.logger, err, "validate credentials")
	}

	token, err := h.service.AcquireToken(c.UserContext(),
		stringValue(values, "email"),
		stringValue(values, "password"),
		stringValue(values, "device_name"),
	)
	if errors.Is(err, services.ErrInvalidCredentials) {
		errs := validation.NewErrors()
		errs.Add("email", "The provided credentials are incorrect.")
		return utils.ValidationResponse(c, errs)
	}
	if err != nil {
		return fail(c, h.logger, err, "acquire token")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, token)
}

// Wipe godoc
// @Summary Revoke every token of the current user
// @Tags mobile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.DataResponse
// @Failure 401 {object} utils.ErrorResponseBody
// @Router /mobile/wipe [get]
func (h *AuthHandler) Wipe(c *fiber.Ctx) error {
	if _, err := validate(c, requests.Empty(), validation.Options{}); err != nil {
		return fail(c, h.logger, err, "wipe tokens")
	}
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthenticated.")
	}

	revoked, err := h.service.Wipe(c.UserContext(), user.ID)
	if err != nil {
		return fail(c, h.logger, err, "wipe tokens")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"revoked": revoked})
}
