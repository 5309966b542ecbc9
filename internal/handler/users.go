package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/theatre-reservation/internal/access"
    "github.com/iliyamo/theatre-reservation/internal/middleware"
    "github.com/iliyamo/theatre-reservation/internal/model"
    "github.com/iliyamo/theatre-reservation/internal/validate"
)

// IdentityService is what the user endpoints need from service.Identity.
type IdentityService interface {
    Register(ctx context.Context, in model.UserInput) (model.User, error)
    Authenticate(ctx context.Context, username, password string) (string, error)
    User(ctx context.Context, id uint64) (model.User, error)
    UpdateSelf(ctx context.Context, id uint64, in model.UserInput, partial bool) (model.User, error)
    Revoke(ctx context.Context, raw string) error
}

// UserHandler serves /users/.
type UserHandler struct {
    Identity IdentityService
}

func NewUserHandler(identity IdentityService) *UserHandler {
    return &UserHandler{Identity: identity}
}

type tokenResp struct {
    Token string `json:"token"`
}

func currentCaller(c echo.Context) (access.Caller, error) {
    caller := middleware.CallerFrom(c)
    if !caller.Authenticated() {
        return caller, access.ErrUnauthenticated
    }
    return caller, nil
}

// Register handles POST /users/.
func (h *UserHandler) Register(c echo.Context) error {
    var in model.UserInput
    if err := bind(c, &in); err != nil {
        return writeError(c, err)
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
    defer cancel()

    u, err := h.Identity.Register(ctx, in)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusCreated, u)
}

// Token handles POST /users/token/ and returns a fresh token.
func (h *UserHandler) Token(c echo.Context) error {
    var creds model.Credentials
    if err := bind(c, &creds); err != nil {
        return writeError(c, err)
    }
    if err := validate.Struct(creds); err != nil {
        return writeError(c, err)
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
    defer cancel()

    tok, err := h.Identity.Authenticate(ctx, creds.Username, creds.Password)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, tokenResp{Token: tok})
}

// Me handles GET /users/me/.
func (h *UserHandler) Me(c echo.Context) error {
    caller, err := currentCaller(c)
    if err != nil {
        return writeError(c, err)
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
    defer cancel()

    u, err := h.Identity.User(ctx, caller.UserID)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, u)
}

// UpdateMe handles PUT (partial=false) and PATCH (partial=true) on
// /users/me/.
func (h *UserHandler) UpdateMe(partial bool) echo.HandlerFunc {
    return func(c echo.Context) error {
        caller, err := currentCaller(c)
        if err != nil {
            return writeError(c, err)
        }
        var in model.UserInput
        if err := bind(c, &in); err != nil {
            return writeError(c, err)
        }
        ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
        defer cancel()

        u, err := h.Identity.UpdateSelf(ctx, caller.UserID, in, partial)
        if err != nil {
            return writeError(c, err)
        }
        return c.JSON(http.StatusOK, u)
    }
}

// Logout handles POST /users/logout/ by revoking the token the request
// was made with. Other sessions of the same user stay valid.
func (h *UserHandler) Logout(c echo.Context) error {
    if _, err := currentCaller(c); err != nil {
        return writeError(c, err)
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
    defer cancel()

    if err := h.Identity.Revoke(ctx, middleware.TokenFrom(c)); err != nil {
        return writeError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
