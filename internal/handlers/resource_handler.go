package handlers

import (
	"museum-backend/internal/repository"
	"museum-backend/internal/requests"
	"museum-backend/internal/services"
	"museum-backend/internal/utils"
	"museum-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ResourceHandler serves the CRUD endpoints of one entity type.
type ResourceHandler[T any] struct {
	name     string
	service  services.ResourceService[T]
	requests requests.Resource
	lookup   validation.Lookup
	logger   *logrus.Logger
}

func NewResourceHandler[T any](
	name string,
	service services.ResourceService[T],
	req requests.Resource,
	lookup validation.Lookup,
	logger *logrus.Logger,
) *ResourceHandler[T] {
	return &ResourceHandler[T]{
		name:     name,
		service:  service,
		requests: req,
		lookup:   lookup,
		logger:   logger,
	}
}

func (h *ResourceHandler[T]) options() validation.Options {
	return validation.Options{Lookup: h.lookup}
}

// Index godoc
// @Summary List resources
// @Description Paginated listing of any resource; accepted filters and includes depend on the resource
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param resource path string true "Resource name" example(item)
// @Param page query int false "Page number" default(1) minimum(1)
// @Param per_page query int false "Items per page" default(20) minimum(1) maximum(100)
// @Param include query string false "Comma-separated relations"
// @Success 200 {object} utils.PaginatedResponse
// @Failure 401 {object} utils.ErrorResponseBody
// @Failure 422 {object} utils.ValidationErrorResponse
// @Router /{resource} [get]
func (h *ResourceHandler[T]) Index(c *fiber.Ctx) error {
	values, err := validate(c, h.requests.Index, h.options())
	if err != nil {
		return fail(c, h.logger, err, "list "+h.name)
	}
	return h.respondList(c, h.query(values))
}

// Where lists the records matching fixed conditions, on top of the filters
// taken from the request.
//
// @Summary List the enabled projects
// @Description Enabled and launched projects whose launch date has passed
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} utils.PaginatedResponse
// @Failure 422 {object} utils.ValidationErrorResponse
// @Router /project/enabled [get]
func (h *ResourceHandler[T]) Where(schema *validation.Schema, conditions map[string]any, scopes ...repository.Scope) fiber.Handler {
	return func(c *fiber.Ctx) error {
		values, err := validate(c, schema, h.options())
		if err != nil {
			return fail(c, h.logger, err, "list "+h.name)
		}
		q := h.query(values)
		for k, v := range conditions {
			q.Filters[k] = v
		}
		q.Scopes = append(q.Scopes, scopes...)
		return h.respondList(c, q)
	}
}

// Linked lists the records joined through a pivot table to the record
// named by the id path parameter, which must exist in table.
//
// @Summary List the items of a tag or the tags of an item
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tag or item ID"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} utils.PaginatedResponse
// @Failure 404 {object} utils.ErrorResponseBody
// @Failure 422 {object} utils.ValidationErrorResponse
// @Router /item/for-tag/{id} [get]
// @Router /tag/for-item/{id} [get]
func (h *ResourceHandler[T]) Linked(schema *validation.Schema, table string, pivot repository.Pivot) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		n, err := h.lookup.Count(c.UserContext(), table, map[string]any{"id": id}, "")
		if err != nil {
			return fail(c, h.logger, err, "list "+h.name)
		}
		if n == 0 {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Not found")
		}

		values, err := validate(c, schema, h.options())
		if err != nil {
			return fail(c, h.logger, err, "list "+h.name)
		}
		q := h.query(values)
		q.Scopes = append(q.Scopes, pivot.LinkedTo(id))
		return h.respondList(c, q)
	}
}

func (h *ResourceHandler[T]) query(values map[string]any) repository.ListQuery {
	q := repository.ListQuery{
		Page:     intValue(values, "page"),
		PerPage:  intValue(values, "per_page"),
		Includes: validation.ParseInclude(values["include"]),
		Filters:  make(map[string]any),
	}
	for _, name := range h.requests.Filters {
		if v, ok := values[name]; ok && v != nil {
			q.Filters[name] = v
		}
	}
	return q
}

func (h *ResourceHandler[T]) respondList(c *fiber.Ctx, q repository.ListQuery) error {
	records, total, err := h.service.List(c.UserContext(), q)
	if err != nil {
		return fail(c, h.logger, err, "list "+h.name)
	}
	return utils.PaginatedSuccessResponse(c, records, q.Page, q.PerPage, total)
}

// Show godoc
// @Summary Get a resource
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param resource path string true "Resource name" example(item)
// @Param id path string true "Resource ID"
// @Param include query string false "Comma-separated relations"
// @Success 200 {object} utils.DataResponse
// @Failure 404 {object} utils.ErrorResponseBody
// @Failure 422 {object} utils.ValidationErrorResponse
// @Router /{resource}/{id} [get]
func (h *ResourceHandler[T]) Show(c *fiber.Ctx) error {
	values, err := validate(c, h.requests.Show, h.options())
	if err != nil {
		return fail(c, h.logger, err, "get "+h.name)
	}

	record, err := h.service.Get(c.UserContext(), c.Params("id"), validation.ParseInclude(values["include"])...)
	if err != nil {
		return fail(c, h.logger, err, "get "+h.name)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, record)
}

// Store godoc
// @Summary Create a resource
// @Description Unknown fields and the id field are rejected
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param resource path string true "Resource name" example(item)
// @Param body body object true "Resource fields"
// @Success 201 {object} utils.DataResponse
// @Failure 422 {object} utils.ValidationErrorResponse
// @Router /{resource} [post]
func (h *ResourceHandler[T]) Store(c *fiber.Ctx) error {
	values, err := validate(c, h.requests.Store, h.options())
	if err != nil {
		return fail(c, h.logger, err, "validate "+h.name)
	}

	record, err := h.service.Create(c.UserContext(), values, relations(values)...)
	if err != nil {
		return fail(c, h.logger, err, "create "+h.name)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, record)
}

// Update godoc
// @Summary Update a resource
// @Description Partial update; unknown fields and the id field are rejected
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param resource path string true "Resource name" example(item)
// @Param id path string true "Resource ID"
// @Param body body object true "Fields to change"
// @Success 200 {object} utils.DataResponse
// @Failure 404 {object} utils.ErrorResponseBody
// @Failure 422 {object} utils.ValidationErrorResponse
// @Router /{resource}/{id} [patch]
func (h *ResourceHandler[T]) Update(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")

	existing, err := h.service.Get(ctx, id)
	if err != nil {
		return fail(c, h.logger, err, "get "+h.name)
	}

	values, err := validate(c, h.requests.Update, validation.Options{
		Lookup:   h.lookup,
		IgnoreID: id,
		Current:  current(existing),
	})
	if err != nil {
		return fail(c, h.logger, err, "validate "+h.name)
	}

	record, err := h.service.Update(ctx, id, values)
	if err != nil {
		return fail(c, h.logger, err, "update "+h.name)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, record)
}

// Destroy godoc
// @Summary Delete a resource
// @Tags resources
// @Security BearerAuth
// @Param resource path string true "Resource name" example(item)
// @Param id path string true "Resource ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseBody
// @Router /{resource}/{id} [delete]
func (h *ResourceHandler[T]) Destroy(c *fiber.Ctx) error {
	if _, err := validate(c, requests.Empty(), h.options()); err != nil {
		return fail(c, h.logger, err, "delete "+h.name)
	}
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, h.logger, err, "delete "+h.name)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// relations lists the nested relations created along with a record, so
// they are returned with it.
func relations(values map[string]any) []string {
	if _, ok := values["translations"]; ok {
		return []string{"translations"}
	}
	return nil
}
