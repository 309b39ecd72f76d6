package handlers

import (
	"context"
	"fmt"
	"mime/multipart"

	"museum-backend/internal/requests"
	"museum-backend/internal/services"
	"museum-backend/internal/utils"
	"museum-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ImageHandler serves the image files: uploads, available images and the
// pictures they become.
type ImageHandler struct {
	service services.ImageService
	upload  *validation.Schema
	lookup  validation.Lookup
	logger  *logrus.Logger
}

func NewImageHandler(service services.ImageService, upload *validation.Schema, lookup validation.Lookup, logger *logrus.Logger) *ImageHandler {
	return &ImageHandler{
		service: service,
		upload:  upload,
		lookup:  lookup,
		logger:  logger,
	}
}

// StoreUpload godoc
// @Summary Upload an image
// @Description The image is processed in the background into an available image
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 201 {object} utils.DataResponse
// @Failure 422 {object} utils.ValidationErrorResponse
// @Router /image-upload [post]
func (h *ImageHandler) StoreUpload(c *fiber.Ctx) error {
	values, err := validate(c, h.upload, validation.Options{})
	if err != nil {
		return fail(c, h.logger, err, "validate upload")
	}

	upload, err := h.service.StoreUpload(c.UserContext(), values["file"].(*multipart.FileHeader))
	if err != nil {
		return fail(c, h.logger, err, "store upload")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, upload)
}

// UploadStatus godoc
// @Summary Get the processing status of an upload
// @Tags images
// @Produce json
// @Security BearerAuth
// @Param id path string true "Upload ID"
// @Success 200 {object} utils.DataResponse
// @Failure 404 {object} utils.ErrorResponseBody
// @Router /image-upload/{id}/status [get]
func (h *ImageHandler) UploadStatus(c *fiber.Ctx) error {
	if _, err := validate(c, requests.Empty(), validation.Options{}); err != nil {
		return fail(c, h.logger, err, "get upload status")
	}
	status, err := h.service.Status(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, h.logger, err, "get upload status")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, status)
}

// DestroyUpload godoc
// @Summary Delete an upload and its file
// @Tags images
// @Security BearerAuth
// @Param id path string true "Upload ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseBody
// @Router /image-upload/{id} [delete]
func (h *ImageHandler) DestroyUpload(c *fiber.Ctx) error {
	return h.destroy(c, "delete upload", h.service.DeleteUpload)
}

// DestroyAvailable godoc
// @Summary Delete an available image and its file
// @Tags images
// @Security BearerAuth
// @Param id path string true "Available image ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseBody
// @Router /available-image/{id} [delete]
func (h *ImageHandler) DestroyAvailable(c *fiber.Ctx) error {
	return h.destroy(c, "delete available image", h.service.DeleteAvailable)
}

// DestroyPicture godoc
// @Summary Delete a picture and its file
// @Tags images
// @Security BearerAuth
// @Param id path string true "Picture ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseBody
// @Router /picture/{id} [delete]
func (h *ImageHandler) DestroyPicture(c *fiber.Ctx) error {
	return h.destroy(c, "delete picture", h.service.DeletePicture)
}

// AttachPicture godoc
// @Summary Attach an available image to an item, a detail or a partner
// @Description The available image is consumed and becomes a picture
// @Tags images
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item, detail or partner ID"
// @Param body body object true "{available_image_id, internal_name, backward_compatibility, copyright_text, copyright_url}"
// @Success 201 {object} utils.DataResponse
// @Failure 404 {object} utils.ErrorResponseBody
// @Failure 422 {object} utils.ValidationErrorResponse
// @Router /picture/attach-to-item/{id} [post]
// @Router /picture/attach-to-detail/{id} [post]
// @Router /picture/attach-to-partner/{id} [post]
func (h *ImageHandler) AttachPicture(pictureableType, table string) fiber.Handler {
	schema := requests.AttachPicture()
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		id := c.Params("id")

		n, err := h.lookup.Count(ctx, table, map[string]any{"id": id}, "")
		if err != nil {
			return fail(c, h.logger, err, "attach picture")
		}
		if n == 0 {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Not found")
		}

		values, err := validate(c, schema, validation.Options{Lookup: h.lookup})
		if err != nil {
			return fail(c, h.logger, err, "validate picture")
		}

		picture, err := h.service.AttachPicture(ctx, pictureableType, id, values)
		if err != nil {
			return fail(c, h.logger, err, "attach picture")
		}
		return utils.SuccessResponse(c, fiber.StatusCreated, picture)
	}
}

// Download godoc
// @Summary Download or view an image file
// @Description download sends the file as an attachment, view inline
// @Tags images
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Picture or available image ID"
// @Success 200 {file} binary
// @Failure 404 {object} utils.ErrorResponseBody
// @Router /picture/{id}/download [get]
// @Router /picture/{id}/view [get]
// @Router /available-image/{id}/download [get]
// @Router /available-image/{id}/view [get]
func (h *ImageHandler) Download(kind string, attachment bool) fiber.Handler {
	open := h.service.OpenPicture
	if kind == "available-image" {
		open = h.service.OpenAvailable
	}
	return func(c *fiber.Ctx) error {
		if _, err := validate(c, requests.Empty(), validation.Options{}); err != nil {
			return fail(c, h.logger, err, "open "+kind)
		}
		file, err := open(c.UserContext(), c.Params("id"))
		if err != nil {
			return fail(c, h.logger, err, "open "+kind)
		}

		disposition := "inline"
		if attachment {
			disposition = "attachment"
		}
		c.Set(fiber.HeaderContentType, file.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("%s; filename=%q", disposition, file.Name))

		// The stream is closed once sent.
		size := int(file.Size)
		if size <= 0 {
			size = -1
		}
		return c.Status(fiber.StatusOK).SendStream(file, size)
	}
}

func (h *ImageHandler) destroy(c *fiber.Ctx, action string, remove func(ctx context.Context, id string) error) error {
	if _, err := validate(c, requests.Empty(), validation.Options{}); err != nil {
		return fail(c, h.logger, err, action)
	}
	if err := remove(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, h.logger, err, action)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
