package middleware

import (
    "context"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/theatre-reservation/internal/access"
    "github.com/iliyamo/theatre-reservation/internal/model"
    "github.com/iliyamo/theatre-reservation/internal/service"
)

// TokenResolver turns a raw token into its user. *service.Identity
// implements it.
type TokenResolver interface {
    Resolve(ctx context.Context, raw string) (model.User, error)
}

// Authenticate resolves the Authorization header into an access.Caller.
// Requests without the header, or with a scheme other than Bearer/Token,
// continue as anonymous; authorization decides later whether that is
// enough. A header that names a known scheme but carries a bad token is
// rejected with the resolver's error.
func Authenticate(r TokenResolver) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw, present := tokenFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
            if !present {
                return next(c)
            }
            if raw == "" {
                return service.ErrInvalidToken
            }

            ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
            u, err := r.Resolve(ctx, raw)
            cancel()
            if err != nil {
                return err
            }

            c.Set(callerKey, access.Caller{UserID: u.ID, Username: u.Username, IsStaff: u.IsStaff})
            c.Set(tokenKey, raw)
            return next(c)
        }
    }
}

// tokenFromHeader accepts "Bearer <t>" and the older "Token <t>" form,
// case-insensitively on the scheme. present is false when neither scheme
// is used.
func tokenFromHeader(h string) (raw string, present bool) {
    scheme, rest, _ := strings.Cut(strings.TrimSpace(h), " ")
    switch strings.ToLower(scheme) {
    case "bearer", "token":
        return strings.TrimSpace(rest), true
    }
    return "", false
}
