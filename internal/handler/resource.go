package handler

import (
    "context"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/theatre-reservation/internal/access"
    "github.com/iliyamo/theatre-reservation/internal/middleware"
    "github.com/iliyamo/theatre-reservation/internal/validate"
)

// requestTimeout bounds every store call made on behalf of a request.
const requestTimeout = 5 * time.Second

// Store is the persistence contract shared by every resource kind. The
// repositories in internal/repository satisfy it.
type Store[T any] interface {
    List(ctx context.Context) ([]T, error)
    Get(ctx context.Context, id uint64) (T, error)
    Create(ctx context.Context, rec *T) error
    Update(ctx context.Context, id uint64, rec *T) error
    Delete(ctx context.Context, id uint64) error
}

// Input is a decoded request payload. Nil pointer fields are absent and
// leave the record untouched.
type Input[T any] interface {
    Apply(rec *T)
}

// Resource serves list, retrieve, create, replace, partial update and
// delete for one kind. Kinds differ only in their hooks.
type Resource[T any, I Input[T]] struct {
    Store Store[T]
    // BeforeCreate fills server-side fields from the caller. An error
    // aborts the create.
    BeforeCreate func(caller access.Caller, rec *T) error
    // AfterCreate runs once the row is committed.
    AfterCreate func(ctx context.Context, rec T)
}

func parseID(c echo.Context) (uint64, error) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return 0, errInvalidID
    }
    return id, nil
}

// bind decodes the request body into in. Unknown fields are ignored.
func bind[I any](c echo.Context, in *I) error {
    if err := (&echo.DefaultBinder{}).BindBody(c, in); err != nil {
        return errBadBody
    }
    return nil
}

// List handles GET {collection}/.
func (r *Resource[T, I]) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
    defer cancel()

    items, err := r.Store.List(ctx)
    if err != nil {
        return writeError(c, err)
    }
    if items == nil {
        items = []T{}
    }
    return c.JSON(http.StatusOK, items)
}

// Retrieve handles GET {collection}/:id/.
func (r *Resource[T, I]) Retrieve(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return writeError(c, err)
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
    defer cancel()

    rec, err := r.Store.Get(ctx, id)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, rec)
}

// Create handles POST {collection}/. Every required field must be present.
func (r *Resource[T, I]) Create(c echo.Context) error {
    var in I
    if err := bind(c, &in); err != nil {
        return writeError(c, err)
    }
    if err := validate.Struct(in); err != nil {
        return writeError(c, err)
    }
    var rec T
    in.Apply(&rec)
    if r.BeforeCreate != nil {
        if err := r.BeforeCreate(middleware.CallerFrom(c), &rec); err != nil {
            return writeError(c, err)
        }
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
    defer cancel()
    if err := r.Store.Create(ctx, &rec); err != nil {
        return writeError(c, err)
    }
    if r.AfterCreate != nil {
        r.AfterCreate(ctx, rec)
    }
    return c.JSON(http.StatusCreated, rec)
}

// Replace handles PUT {collection}/:id/.
func (r *Resource[T, I]) Replace(c echo.Context) error {
    return r.update(c, false)
}

// PartialUpdate handles PATCH {collection}/:id/.
func (r *Resource[T, I]) PartialUpdate(c echo.Context) error {
    return r.update(c, true)
}

func (r *Resource[T, I]) update(c echo.Context, partial bool) error {
    id, err := parseID(c)
    if err != nil {
        return writeError(c, err)
    }
    var in I
    if err := bind(c, &in); err != nil {
        return writeError(c, err)
    }
    if partial {
        err = validate.Partial(in)
    } else {
        err = validate.Struct(in)
    }
    if err != nil {
        return writeError(c, err)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
    defer cancel()
    // Start from the stored row so server-side fields survive and a
    // missing id reports 404 before anything is written.
    rec, err := r.Store.Get(ctx, id)
    if err != nil {
        return writeError(c, err)
    }
    in.Apply(&rec)
    if err := r.Store.Update(ctx, id, &rec); err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, rec)
}

// Delete handles DELETE {collection}/:id/ and answers 204 with no body.
func (r *Resource[T, I]) Delete(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return writeError(c, err)
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
    defer cancel()

    if err := r.Store.Delete(ctx, id); err != nil {
        return writeError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
