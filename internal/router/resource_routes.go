package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theatre-reservation/internal/access"
	"github.com/iliyamo/theatre-reservation/internal/handler"
	"github.com/iliyamo/theatre-reservation/internal/middleware"
)

// crud is implemented by every handler.Resource instantiation.
type crud interface {
	List(echo.Context) error
	Retrieve(echo.Context) error
	Create(echo.Context) error
	Replace(echo.Context) error
	PartialUpdate(echo.Context) error
	Delete(echo.Context) error
}

// registerResource mounts the six operations under prefix. Each route is
// authorized for its own operation first; the response cache sits behind
// authorization so a refused caller never sees a cached body.
func registerResource(e *echo.Echo, prefix string, h crud, scope access.Scope, policy access.Policy, cache echo.MiddlewareFunc) {
	guard := func(op access.Operation) []echo.MiddlewareFunc {
		return []echo.MiddlewareFunc{middleware.Authorize(policy, scope, op), cache}
	}
	e.GET(prefix+"/", h.List, guard(access.OpList)...)
	e.POST(prefix+"/", h.Create, guard(access.OpCreate)...)
	e.GET(prefix+"/:id/", h.Retrieve, guard(access.OpRetrieve)...)
	e.PUT(prefix+"/:id/", h.Replace, guard(access.OpReplace)...)
	e.PATCH(prefix+"/:id/", h.PartialUpdate, guard(access.OpPartialUpdate)...)
	e.DELETE(prefix+"/:id/", h.Delete, guard(access.OpDelete)...)
}

// RegisterCatalog mounts halls, plays, performances, actors and genres.
func RegisterCatalog(e *echo.Echo, d Deps) {
	cache := middleware.NewRedisCache(d.Cache, d.Redis)
	registerResource(e, "/theatre-halls", handler.NewTheatreHalls(d.TheatreHalls), access.ScopeCatalog, d.Policy, cache)
	registerResource(e, "/plays", handler.NewPlays(d.Plays), access.ScopeCatalog, d.Policy, cache)
	registerResource(e, "/performances", handler.NewPerformances(d.Performances), access.ScopeCatalog, d.Policy, cache)
	registerResource(e, "/actors", handler.NewActors(d.Actors), access.ScopeCatalog, d.Policy, cache)
	registerResource(e, "/genres", handler.NewGenres(d.Genres), access.ScopeCatalog, d.Policy, cache)
}

// RegisterBooking mounts reservations and tickets.
func RegisterBooking(e *echo.Echo, d Deps) {
	cache := middleware.NewRedisCache(d.Cache, d.Redis)
	registerResource(e, "/reservations", handler.NewReservations(d.Reservations, d.Publisher), access.ScopeBooking, d.Policy, cache)
	registerResource(e, "/tickets", handler.NewTickets(d.Tickets, d.Publisher), access.ScopeBooking, d.Policy, cache)
}
