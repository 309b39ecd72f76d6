package utils

import (
	"museum-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// DataResponse wraps a single resource
type DataResponse struct {
	Data interface{} `json:"data"`
}

// PaginatedResponse wraps one page of resources
type PaginatedResponse struct {
	Data interface{}    `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// PaginationMeta represents pagination metadata
type PaginationMeta struct {
	CurrentPage int   `json:"current_page" example:"1"`
	PerPage     int   `json:"per_page" example:"20"`
	Total       int64 `json:"total" example:"42"`
}

// ErrorResponseBody is returned for every non-validation failure
type ErrorResponseBody struct {
	Message string `json:"message" example:"Not found"`
}

// ValidationErrorResponse lists every rejected field
type ValidationErrorResponse struct {
	Message string              `json:"message" example:"The page field must be at least 1."`
	Errors  map[string][]string `json:"errors"`
}

// SuccessResponse sends a success response
func SuccessResponse(c *fiber.Ctx, code int, data interface{}) error {
	return c.Status(code).JSON(DataResponse{Data: data})
}

// PaginatedSuccessResponse sends a page of resources with its metadata
func PaginatedSuccessResponse(c *fiber.Ctx, data interface{}, page, perPage int, total int64) error {
	return c.Status(fiber.StatusOK).JSON(PaginatedResponse{
		Data: data,
		Meta: PaginationMeta{CurrentPage: page, PerPage: perPage, Total: total},
	})
}

// ErrorResponse sends an error response
func ErrorResponse(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(ErrorResponseBody{Message: message})
}

// ValidationResponse sends a 422 listing every violation
func ValidationResponse(c *fiber.Ctx, errs *validation.Errors) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ValidationErrorResponse{
		Message: errs.Message(),
		Errors:  errs.Fields(),
	})
}
