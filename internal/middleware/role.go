package middleware

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/theatre-reservation/internal/access"
)

// Authorize consults policy for the operation a route performs. A refusal
// is returned as access.ErrUnauthenticated or access.ErrForbidden for the
// HTTP error handler to render.
func Authorize(policy access.Policy, scope access.Scope, op access.Operation) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if err := policy.Authorize(CallerFrom(c), scope, op); err != nil {
                return err
            }
            return next(c)
        }
    }
}
