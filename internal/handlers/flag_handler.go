package handlers

import (
	"museum-backend/internal/requests"
	"museum-backend/internal/services"
	"museum-backend/internal/utils"
	"museum-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// FlagHandler serves the endpoints around the boolean flags of a resource,
// such as the default language or the enabled projects.
type FlagHandler[T any] struct {
	name    string
	service services.ResourceService[T]
	lookup  validation.Lookup
	logger  *logrus.Logger
}

func NewFlagHandler[T any](name string, service services.ResourceService[T], lookup validation.Lookup, logger *logrus.Logger) *FlagHandler[T] {
	return &FlagHandler[T]{
		name:    name,
		service: service,
		lookup:  lookup,
		logger:  logger,
	}
}

// FindOne godoc
// @Summary Get the default language, the English language or the default context
// @Tags flags
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.DataResponse
// @Failure 404 {object} utils.ErrorResponseBody
// @Router /language/default [get]
// @Router /language/english [get]
// @Router /context/default [get]
func (h *FlagHandler[T]) FindOne(conditions map[string]any) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := validate(c, requests.Empty(), validation.Options{}); err != nil {
			return fail(c, h.logger, err, "get "+h.name)
		}
		record, err := h.service.FindOne(c.UserContext(), conditions)
		if err != nil {
			return fail(c, h.logger, err, "get "+h.name)
		}
		return utils.SuccessResponse(c, fiber.StatusOK, record)
	}
}

// Set godoc
// @Summary Set a boolean flag of a record
// @Description Setting is_default makes the record the single default; false clears it
// @Tags flags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Param body body object true "{is_default|is_launched|is_enabled: bool}"
// @Success 200 {object} utils.DataResponse
// @Failure 404 {object} utils.ErrorResponseBody
// @Failure 422 {object} utils.ValidationErrorResponse
// @Router /language/{id}/default [patch]
// @Router /context/{id}/default [patch]
// @Router /project/{id}/launched [patch]
// @Router /project/{id}/enabled [patch]
func (h *FlagHandler[T]) Set(column string, exclusive bool) fiber.Handler {
	schema := requests.Flag(column)
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		id := c.Params("id")

		if _, err := h.service.Get(ctx, id); err != nil {
			return fail(c, h.logger, err, "get "+h.name)
		}
		values, err := validate(c, schema, validation.Options{Lookup: h.lookup})
		if err != nil {
			return fail(c, h.logger, err, "validate "+h.name)
		}

		value, _ := values[column].(bool)
		record, err := h.service.SetFlag(ctx, id, column, value, exclusive)
		if err != nil {
			return fail(c, h.logger, err, "update "+h.name)
		}
		return utils.SuccessResponse(c, fiber.StatusOK, record)
	}
}

// Clear godoc
// @Summary Clear the default flag
// @Tags flags
// @Security BearerAuth
// @Success 204
// @Router /language/default [delete]
// @Router /context/default [delete]
func (h *FlagHandler[T]) Clear(column string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := validate(c, requests.Empty(), validation.Options{}); err != nil {
			return fail(c, h.logger, err, "update "+h.name)
		}
		if err := h.service.ClearFlag(c.UserContext(), column); err != nil {
			return fail(c, h.logger, err, "update "+h.name)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
