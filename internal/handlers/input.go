package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"museum-backend/internal/repository"
	"museum-backend/internal/services"
	"museum-backend/internal/utils"
	"museum-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// input gathers the request parameters: the query string, then the JSON or
// multipart body on top of it. A key written as "name[]" is an array.
func input(c *fiber.Ctx) (map[string]any, error) {
	values := make(map[string]any)
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		set(values, string(key), string(value))
	})

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, bodyError("The body must be a valid multipart form.")
		}
		for key, list := range form.Value {
			for _, v := range list {
				set(values, key, v)
			}
		}
		for key, files := range form.File {
			if len(files) > 0 {
				values[key] = files[0]
			}
		}
		return values, nil
	}

	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return values, nil
	}
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, bodyError("The body must be valid JSON.")
	}
	object, ok := decoded.(map[string]any)
	if !ok {
		return nil, bodyError("The body must be a JSON object.")
	}
	for key, v := range object {
		values[key] = v
	}
	return values, nil
}

func set(values map[string]any, key, value string) {
	if name, ok := strings.CutSuffix(key, "[]"); ok {
		list, _ := values[name].([]any)
		values[name] = append(list, value)
		return
	}
	values[key] = value
}

func bodyError(message string) *validation.Errors {
	errs := validation.NewErrors()
	errs.Add("body", message)
	return errs
}

// validate parses and checks the request parameters in one step.
func validate(c *fiber.Ctx, schema *validation.Schema, opts validation.Options) (map[string]any, error) {
	raw, err := input(c)
	if err != nil {
		return nil, err
	}
	return validation.Validate(c.UserContext(), schema, raw, opts)
}

// current exposes a stored record as parameters, for rules scoped on it.
func current(entity any) map[string]any {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil
	}
	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}
	return values
}

func intValue(values map[string]any, key string) int {
	n, _ := values[key].(int)
	return n
}

func stringValue(values map[string]any, key string) string {
	s, _ := values[key].(string)
	return s
}

// fail renders err with the status its kind calls for.
func fail(c *fiber.Ctx, log *logrus.Logger, err error, action string) error {
	var verrs *validation.Errors
	switch {
	case errors.As(err, &verrs):
		return utils.ValidationResponse(c, verrs)
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, services.ErrObjectNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Not found")
	}

	log.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Errorf("Failed to %s", action)
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
}
