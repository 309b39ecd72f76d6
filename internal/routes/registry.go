package routes

import (
	"museum-backend/internal/handlers"
	"museum-backend/internal/repository"
	"museum-backend/internal/requests"
	"museum-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

type registry struct {
	router fiber.Router
	deps   Deps
	lookup *repository.LookupRepository
}

// resource is the route group of one entity. Specific routes go on router
// before crud registers the generic ones, so that "/:id" does not shadow them.
type resource[T any] struct {
	router   fiber.Router
	handler  *handlers.ResourceHandler[T]
	requests requests.Resource
	store    fiber.Handler
	destroy  fiber.Handler
}

// newResource wires repository, service and handler of T under /name.
// Deleting a record also deletes the cascade relations.
func newResource[T any](r *registry, name string, req requests.Resource, cascade ...string) (*resource[T], services.ResourceService[T]) {
	service := services.NewResourceService[T](name, repository.New[T](r.deps.DB, cascade...), r.deps.Logger)
	handler := handlers.NewResourceHandler[T](name, service, req, r.lookup, r.deps.Logger)

	res := &resource[T]{
		router:   r.router.Group("/" + name),
		handler:  handler,
		requests: req,
		destroy:  handler.Destroy,
	}
	if req.Store != nil {
		res.store = handler.Store
	}
	return res, service
}

func (res *resource[T]) crud() {
	res.router.Get("/", res.handler.Index)
	if res.store != nil {
		res.router.Post("/", res.store)
	}
	res.router.Get("/:id", res.handler.Show)
	if res.requests.Update != nil {
		res.router.Patch("/:id", res.handler.Update)
		res.router.Put("/:id", res.handler.Update)
	}
	res.router.Delete("/:id", res.destroy)
}

func newTranslation[T any](r *registry, name string, req requests.Resource) {
	res, _ := newResource[T](r, name, req)
	res.crud()
}
