package routes

import (
	"museum-backend/internal/config"
	"museum-backend/internal/database"
	"museum-backend/internal/handlers"
	"museum-backend/internal/middleware"
	"museum-backend/internal/models"
	"museum-backend/internal/repository"
	"museum-backend/internal/requests"
	"museum-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Deps carries what the routes are built from.
type Deps struct {
	Config   *config.Config
	DB       *database.Database
	Auth     services.AuthService
	Images   services.ImageService
	Markdown services.MarkdownService
	Metrics  *middleware.Metrics
	Logger   *logrus.Logger
}

func Setup(app *fiber.App, d Deps) {
	lookup := repository.NewLookupRepository(d.DB)
	p := d.Config.Pagination

	info := handlers.NewInfoHandler(d.DB, d.Config.App, d.Logger)
	app.Get("/health", info.Health)
	if d.Metrics != nil {
		app.Get("/metrics", d.Metrics.Handler())
	}

	// API versioning
	api := app.Group("/api")
	v1 := api.Group("/v1")

	v1.Get("/health", info.Health)
	v1.Get("/info", info.Info)
	v1.Get("/version", info.Version)

	authHandler := handlers.NewAuthHandler(d.Auth, d.Logger)
	requireAuth := middleware.RequireAuth(d.Auth, d.Logger)

	mobile := v1.Group("/mobile")
	{
		mobile.Post("/acquire-token", middleware.RateLimit(d.Config.Auth.RateLimit, d.Config.Auth.RateWindow), authHandler.AcquireToken)
		mobile.Get("/wipe", requireAuth, authHandler.Wipe)
	}

	// Everything below requires a bearer token
	secured := v1.Group("", requireAuth)
	r := &registry{router: secured, deps: d, lookup: lookup}

	// Reference data
	languages, languageService := newResource[models.Language](r, "language", requests.Language(p))
	{
		flags := handlers.NewFlagHandler("language", languageService, lookup, d.Logger)
		languages.router.Get("/default", flags.FindOne(map[string]any{"is_default": true}))
		languages.router.Get("/english", flags.FindOne(map[string]any{"id": "eng"}))
		languages.router.Delete("/default", flags.Clear("is_default"))
		languages.router.Patch("/:id/default", flags.Set("is_default", true))
		languages.crud()
	}

	countries, _ := newResource[models.Country](r, "country", requests.Country(p))
	countries.crud()

	contexts, contextService := newResource[models.Context](r, "context", requests.Context(p))
	{
		flags := handlers.NewFlagHandler("context", contextService, lookup, d.Logger)
		contexts.router.Get("/default", flags.FindOne(map[string]any{"is_default": true}))
		contexts.router.Delete("/default", flags.Clear("is_default"))
		contexts.router.Patch("/:id/default", flags.Set("is_default", true))
		contexts.crud()
	}

	projects, projectService := newResource[models.Project](r, "project", requests.Project(p))
	{
		flags := handlers.NewFlagHandler("project", projectService, lookup, d.Logger)
		enabled := map[string]any{"is_enabled": true, "is_launched": true}
		projects.router.Get("/enabled", projects.handler.Where(requests.Listing(p, "context", "language"), enabled, repository.Launched))
		projects.router.Patch("/:id/launched", flags.Set("is_launched", false))
		projects.router.Patch("/:id/enabled", flags.Set("is_enabled", false))
		projects.crud()
	}

	partners, _ := newResource[models.Partner](r, "partner", requests.Partner(p))
	partners.crud()

	// Collection objects
	items, _ := newResource[models.Item](r, "item", requests.Item(p), "Translations", "Tags")
	{
		tagLink := handlers.Link{Field: "tag_id", Table: "tags", Relation: "tags", Model: func(id string) any {
			return &models.Tag{UUIDModel: models.UUIDModel{ID: id}}
		}}
		items.router.Get("/for-tag/:id", items.handler.Linked(requests.Listing(p, items.requests.Includes...), "tags", repository.ItemsOfTag))
		items.router.Post("/:id/attach-tag", items.handler.Attach(tagLink))
		items.router.Delete("/:id/detach-tag", items.handler.Detach(tagLink))
		items.crud()
	}

	tags, _ := newResource[models.Tag](r, "tag", requests.Tag(p), "Items")
	{
		tags.router.Get("/for-item/:id", tags.handler.Linked(requests.Listing(p, "items"), "items", repository.TagsOfItem))
		tags.crud()
	}

	details, _ := newResource[models.Detail](r, "detail", requests.Detail(p), "Translations")
	details.crud()

	collections, _ := newResource[models.Collection](r, "collection", requests.Collection(p), "Items", "Translations")
	{
		itemLink := handlers.Link{Field: "item_id", Table: "items", Relation: "items", Model: func(id string) any {
			return &models.Item{UUIDModel: models.UUIDModel{ID: id}}
		}}
		collections.router.Post("/:id/attach-item", collections.handler.Attach(itemLink))
		collections.router.Delete("/:id/detach-item", collections.handler.Detach(itemLink))
		collections.crud()
	}

	galleries, _ := newResource[models.Gallery](r, "gallery", requests.Gallery(p), "Pictures")
	{
		pictureLink := handlers.Link{Field: "picture_id", Table: "pictures", Relation: "pictures", Model: func(id string) any {
			return &models.Picture{UUIDModel: models.UUIDModel{ID: id}}
		}}
		galleries.router.Post("/:id/attach-picture", galleries.handler.Attach(pictureLink))
		galleries.router.Delete("/:id/detach-picture", galleries.handler.Detach(pictureLink))
		galleries.crud()
	}

	exhibitions, _ := newResource[models.Exhibition](r, "exhibition", requests.Exhibition(p), "Translations", "Themes")
	exhibitions.crud()

	themes, _ := newResource[models.Theme](r, "theme", requests.Theme(p), "Translations")
	themes.crud()

	// Places and contacts
	contacts, _ := newResource[models.Contact](r, "contact", requests.Contact(p), "Translations")
	contacts.crud()

	provinces, _ := newResource[models.Province](r, "province", requests.Province(p), "Translations")
	provinces.crud()

	locations, _ := newResource[models.Location](r, "location", requests.Location(p), "Translations")
	locations.crud()

	addresses, _ := newResource[models.Address](r, "address", requests.Address(p), "Translations")
	addresses.crud()

	// Images
	images := handlers.NewImageHandler(d.Images, requests.ImageUpload(p, d.Config.Upload.MaxSize).Store, lookup, d.Logger)

	uploads, _ := newResource[models.ImageUpload](r, "image-upload", requests.ImageUpload(p, d.Config.Upload.MaxSize))
	{
		uploads.router.Get("/:id/status", images.UploadStatus)
		uploads.store = images.StoreUpload
		uploads.destroy = images.DestroyUpload
		uploads.crud()
	}

	available, _ := newResource[models.AvailableImage](r, "available-image", requests.AvailableImage(p))
	{
		available.router.Get("/:id/download", images.Download("available-image", true))
		available.router.Get("/:id/view", images.Download("available-image", false))
		available.destroy = images.DestroyAvailable
		available.crud()
	}

	pictures, _ := newResource[models.Picture](r, "picture", requests.Picture(p), "Translations")
	{
		pictures.router.Post("/attach-to-item/:id", images.AttachPicture(models.PictureableItem, "items"))
		pictures.router.Post("/attach-to-detail/:id", images.AttachPicture(models.PictureableDetail, "details"))
		pictures.router.Post("/attach-to-partner/:id", images.AttachPicture(models.PictureablePartner, "partners"))
		pictures.router.Get("/:id/download", images.Download("picture", true))
		pictures.router.Get("/:id/view", images.Download("picture", false))
		pictures.destroy = images.DestroyPicture
		pictures.crud()
	}

	// Translations
	newTranslation[models.ItemTranslation](r, "item-translation", requests.ItemTranslation(p))
	newTranslation[models.DetailTranslation](r, "detail-translation", requests.DetailTranslation(p))
	newTranslation[models.CollectionTranslation](r, "collection-translation", requests.CollectionTranslation(p))
	newTranslation[models.ExhibitionTranslation](r, "exhibition-translation", requests.ExhibitionTranslation(p))
	newTranslation[models.ThemeTranslation](r, "theme-translation", requests.ThemeTranslation(p))
	newTranslation[models.PictureTranslation](r, "picture-translation", requests.PictureTranslation(p))
	newTranslation[models.ContactTranslation](r, "contact-translation", requests.ContactTranslation(p))
	newTranslation[models.ProvinceTranslation](r, "province-translation", requests.ProvinceTranslation(p))
	newTranslation[models.LocationTranslation](r, "location-translation", requests.LocationTranslation(p))
	newTranslation[models.AddressTranslation](r, "address-translation", requests.AddressTranslation(p))

	// Markdown tools
	markdown := handlers.NewMarkdownHandler(d.Markdown, d.Logger)
	md := secured.Group("/markdown")
	{
		md.Post("/to-html", markdown.ToHTML)
		md.Post("/from-html", markdown.FromHTML)
		md.Post("/validate", markdown.Validate)
		md.Post("/preview", markdown.Preview)
		md.Post("/is-markdown", markdown.IsMarkdown)
		md.Get("/allowed-elements", markdown.AllowedElements)
	}
}
