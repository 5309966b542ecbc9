package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theatre-reservation/internal/handler"
)

// RegisterUsers mounts registration, login and the self-service endpoints.
// The /me/ and /logout/ handlers reject anonymous callers themselves.
func RegisterUsers(e *echo.Echo, h *handler.UserHandler) {
	g := e.Group("/users")
	g.POST("/", h.Register)
	g.POST("/token/", h.Token)
	g.GET("/me/", h.Me)
	g.PUT("/me/", h.UpdateMe(false))
	g.PATCH("/me/", h.UpdateMe(true))
	g.POST("/logout/", h.Logout)
}
