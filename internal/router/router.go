package router // package router defines how HTTP routes are registered for the API

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/theatre-reservation/internal/access"
	"github.com/iliyamo/theatre-reservation/internal/config"
	"github.com/iliyamo/theatre-reservation/internal/handler"
	"github.com/iliyamo/theatre-reservation/internal/middleware"
	"github.com/iliyamo/theatre-reservation/internal/model"
	"github.com/iliyamo/theatre-reservation/internal/service"
)

// Deps is everything the routes need. Redis may be nil, which turns the
// response cache and the rate limiter into no-ops.
type Deps struct {
	Policy    access.Policy
	Resolver  middleware.TokenResolver
	Identity  handler.IdentityService
	Publisher service.Publisher

	TheatreHalls handler.Store[model.TheatreHall]
	Plays        handler.Store[model.Play]
	Performances handler.Store[model.Performance]
	Actors       handler.Store[model.Actor]
	Genres       handler.Store[model.Genre]
	Reservations handler.Store[model.Reservation]
	Tickets      handler.Store[model.Ticket]

	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
}

// New builds the Echo instance with the shared middleware chain and every
// route registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	// Collection and detail routes end in "/"; accept both spellings.
	e.Pre(echomw.AddTrailingSlashWithConfig(echomw.TrailingSlashConfig{
		Skipper: func(c echo.Context) bool { return c.Request().URL.Path == "/healthz" },
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Printf("request id=%s method=%s path=%s status=%d duration=%s",
				v.RequestID, v.Method, v.URI, v.Status, v.Latency.Round(time.Microsecond))
			return nil
		},
	}))
	e.Use(middleware.Authenticate(d.Resolver))
	e.Use(middleware.NewTokenBucket(d.RateLimit, d.Redis))

	RegisterRoutes(e)
	RegisterCatalog(e, d)
	RegisterBooking(e, d)
	RegisterUsers(e, handler.NewUserHandler(d.Identity))
	return e
}

// RegisterRoutes registers routes that sit outside the resource API.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}
