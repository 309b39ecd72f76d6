package handlers

import (
	"runtime"
	"time"

	"museum-backend/internal/config"
	"museum-backend/internal/database"
	"museum-backend/internal/requests"
	"museum-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type InfoHandler struct {
	db      *database.Database
	app     config.AppConfig
	started time.Time
	logger  *logrus.Logger
}

func NewInfoHandler(db *database.Database, app config.AppConfig, logger *logrus.Logger) *InfoHandler {
	return &InfoHandler{
		db:      db,
		app:     app,
		started: time.Now().UTC(),
		logger:  logger,
	}
}

// Health godoc
// @Summary Health check
// @Tags info
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *InfoHandler) Health(c *fiber.Ctx) error {
	if _, err := validate(c, requests.Empty(), validation.Options{}); err != nil {
		return fail(c, h.logger, err, "check health")
	}

	status, dbStatus, code := "ok", "healthy", fiber.StatusOK
	if err := h.db.HealthCheck(); err != nil {
		h.logger.WithError(err).Warn("Database health check failed")
		status, dbStatus, code = "degraded", "unhealthy", fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    status,
		"service":   "museum-backend",
		"version":   h.app.Version,
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Info godoc
// @Summary Application information
// @Tags info
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /info [get]
func (h *InfoHandler) Info(c *fiber.Ctx) error {
	if _, err := validate(c, requests.Empty(), validation.Options{}); err != nil {
		return fail(c, h.logger, err, "get info")
	}
	return c.JSON(fiber.Map{
		"name":        h.app.Name,
		"version":     h.app.Version,
		"environment": h.app.Env,
		"go_version":  runtime.Version(),
		"started_at":  h.started.Format(time.RFC3339),
		"uptime":      time.Since(h.started).Round(time.Second).String(),
	})
}

// Version godoc
// @Summary Application version
// @Tags info
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /version [get]
func (h *InfoHandler) Version(c *fiber.Ctx) error {
	if _, err := validate(c, requests.Empty(), validation.Options{}); err != nil {
		return fail(c, h.logger, err, "get version")
	}
	return c.JSON(fiber.Map{"version": h.app.Version})
}
