package handlers

import (
	"museum-backend/internal/requests"
	"museum-backend/internal/services"
	"museum-backend/internal/utils"
	"museum-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type MarkdownHandler struct {
	service services.MarkdownService
	logger  *logrus.Logger
}

func NewMarkdownHandler(service services.MarkdownService, logger *logrus.Logger) *MarkdownHandler {
	return &MarkdownHandler{
		service: service,
		logger:  logger,
	}
}

func (h *MarkdownHandler) content(c *fiber.Ctx) (string, error) {
	values, err := validate(c, requests.Markdown(), validation.Options{})
	if err != nil {
		return "", err
	}
	return stringValue(values, "content"), nil
}

// ToHTML godoc
// @Summary Convert markdown to sanitized HTML
// @Tags markdown
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body object true "{content: string}"
// @Success 200 {object} utils.DataResponse
// @Failure 422 {object} utils.ValidationErrorResponse
// @Router /markdown/to-html [post]
func (h *MarkdownHandler) ToHTML(c *fiber.Ctx) error {
	content, err := h.content(c)
	if err != nil {
		return fail(c, h.logger, err, "validate markdown")
	}
	html, err := h.service.ToHTML(content)
	if err != nil {
		return fail(c, h.logger, err, "render markdown")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"html": html})
}

// FromHTML godoc
// @Summary Convert HTML to markdown
// @Description Scripts and styles are removed before conversion
// @Tags markdown
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body object true "{content: string}"
// @Success 200 {object} utils.DataResponse
// @Failure 422 {object} utils.ValidationErrorResponse
// @Router /markdown/from-html [post]
func (h *MarkdownHandler) FromHTML(c *fiber.Ctx) error {
	content, err := h.content(c)
	if err != nil {
		return fail(c, h.logger, err, "validate html")
	}
	markdown, err := h.service.FromHTML(content)
	if err != nil {
		return fail(c, h.logger, err, "convert html")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"markdown": markdown})
}

// Validate godoc
// @Summary Check markdown for unsafe content
// @Tags markdown
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body object true "{content: string}"
// @Success 200 {object} utils.DataResponse
// @Failure 422 {object} utils.ValidationErrorResponse
// @Router /markdown/validate [post]
func (h *MarkdownHandler) Validate(c *fiber.Ctx) error {
	content, err := h.content(c)
	if err != nil {
		return fail(c, h.logger, err, "validate markdown")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, h.service.Validate(content))
}

// Preview godoc
// @Summary Render markdown for preview
// @Tags markdown
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body object true "{content: string}"
// @Success 200 {object} utils.DataResponse
// @Failure 422 {object} utils.ValidationErrorResponse
// @Router /markdown/preview [post]
func (h *MarkdownHandler) Preview(c *fiber.Ctx) error {
	content, err := h.content(c)
	if err != nil {
		return fail(c, h.logger, err, "validate markdown")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"preview": h.service.Preview(content)})
}

// IsMarkdown godoc
// @Summary Detect markdown syntax
// @Tags markdown
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body object true "{content: string}"
// @Success 200 {object} utils.DataResponse
// @Failure 422 {object} utils.ValidationErrorResponse
// @Router /markdown/is-markdown [post]
func (h *MarkdownHandler) IsMarkdown(c *fiber.Ctx) error {
	content, err := h.content(c)
	if err != nil {
		return fail(c, h.logger, err, "validate markdown")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"is_markdown": h.service.IsMarkdown(content)})
}

// AllowedElements godoc
// @Summary List the supported HTML tags and markdown elements
// @Tags markdown
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.DataResponse
// @Failure 422 {object} utils.ValidationErrorResponse
// @Router /markdown/allowed-elements [get]
func (h *MarkdownHandler) AllowedElements(c *fiber.Ctx) error {
	if _, err := validate(c, requests.Empty(), validation.Options{}); err != nil {
		return fail(c, h.logger, err, "list allowed elements")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, h.service.AllowedElements())
}
