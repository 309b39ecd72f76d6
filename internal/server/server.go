package server

import (
	"errors"
	"time"

	"museum-backend/internal/config"
	"museum-backend/internal/database"
	"museum-backend/internal/middleware"
	"museum-backend/internal/models"
	"museum-backend/internal/repository"
	"museum-backend/internal/routes"
	"museum-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

// Server is the HTTP application with the services it runs.
type Server struct {
	App    *fiber.App
	Auth   services.AuthService
	Images services.ImageService
}

func New(cfg *config.Config, db *database.Database, storage services.ObjectStorage, log *logrus.Logger) *Server {
	auth := services.NewAuthService(repository.NewUserRepository(db), cfg.Auth, log)
	images := services.NewImageService(
		repository.New[models.ImageUpload](db),
		repository.New[models.AvailableImage](db),
		repository.New[models.Picture](db, "Translations"),
		repository.NewImageRepository(db),
		storage,
		cfg.Upload,
		log,
	)
	metrics := middleware.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           120 * time.Second,
		BodyLimit:             int(cfg.Upload.MaxSize) + 1<<20,
		DisableStartupMessage: cfg.App.Env == "test",
		ErrorHandler:          customErrorHandler(log),
	})

	setupMiddleware(app, metrics, cfg.App.Env != "test")

	// Swagger documentation
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	routes.Setup(app, routes.Deps{
		Config:   cfg,
		DB:       db,
		Auth:     auth,
		Images:   images,
		Markdown: services.NewMarkdownService(log),
		Metrics:  metrics,
		Logger:   log,
	})

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	return &Server{App: app, Auth: auth, Images: images}
}

func setupMiddleware(app *fiber.App, metrics *middleware.Metrics, accessLog bool) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// Logger middleware
	if accessLog {
		app.Use(logger.New(logger.Config{
			Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "UTC",
		}))
	}

	app.Use(metrics.Middleware())

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS, PATCH",
		AllowCredentials: false,
		MaxAge:           86400, // 24 hours
	}))
}

func customErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.WithError(err).WithFields(logrus.Fields{
				"method": c.Method(),
				"path":   c.Path(),
				"status": code,
			}).Error("Request error")
		}

		return c.Status(code).JSON(fiber.Map{
			"message": message,
		})
	}
}
