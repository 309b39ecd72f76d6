package handlers

import (
	"museum-backend/internal/requests"
	"museum-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// Link describes a many-to-many relation that can be edited through the API.
type Link struct {
	// Field is the body parameter naming the related record.
	Field string
	Table string
	// Relation is the include name of the association.
	Relation string
	// Model builds a reference to the related record.
	Model func(id string) any
}

// Attach godoc
// @Summary Attach a related record
// @Description Attaching an already attached record is a no-op
// @Tags links
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Owner ID"
// @Param body body object true "{tag_id|item_id|picture_id: uuid}"
// @Success 200 {object} utils.DataResponse
// @Failure 404 {object} utils.ErrorResponseBody
// @Failure 422 {object} utils.ValidationErrorResponse
// @Router /item/{id}/attach-tag [post]
// @Router /collection/{id}/attach-item [post]
// @Router /gallery/{id}/attach-picture [post]
func (h *ResourceHandler[T]) Attach(link Link) fiber.Handler {
	return h.editLink(link, true)
}

// Detach godoc
// @Summary Detach a related record
// @Tags links
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Owner ID"
// @Param body body object true "{tag_id|item_id|picture_id: uuid}"
// @Success 200 {object} utils.DataResponse
// @Failure 404 {object} utils.ErrorResponseBody
// @Failure 422 {object} utils.ValidationErrorResponse
// @Router /item/{id}/detach-tag [delete]
// @Router /collection/{id}/detach-item [delete]
// @Router /gallery/{id}/detach-picture [delete]
func (h *ResourceHandler[T]) Detach(link Link) fiber.Handler {
	return h.editLink(link, false)
}

func (h *ResourceHandler[T]) editLink(link Link, attach bool) fiber.Handler {
	schema := requests.Link(link.Field, link.Table)
	action := "detach " + link.Relation
	if attach {
		action = "attach " + link.Relation
	}

	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		id := c.Params("id")

		if _, err := h.service.Get(ctx, id); err != nil {
			return fail(c, h.logger, err, "get "+h.name)
		}
		values, err := validate(c, schema, h.options())
		if err != nil {
			return fail(c, h.logger, err, "validate "+h.name)
		}

		related := link.Model(stringValue(values, link.Field))
		if attach {
			err = h.service.Attach(ctx, id, link.Relation, related)
		} else {
			err = h.service.Detach(ctx, id, link.Relation, related)
		}
		if err != nil {
			return fail(c, h.logger, err, action)
		}

		record, err := h.service.Get(ctx, id, link.Relation)
		if err != nil {
			return fail(c, h.logger, err, "get "+h.name)
		}
		return utils.SuccessResponse(c, fiber.StatusOK, record)
	}
}
