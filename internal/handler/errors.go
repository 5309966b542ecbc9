package handler

import (
    "errors"
    "log"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/theatre-reservation/internal/access"
    "github.com/iliyamo/theatre-reservation/internal/repository"
    "github.com/iliyamo/theatre-reservation/internal/service"
)

const (
    codeValidation         = "validation_error"
    codeParse              = "parse_error"
    codeInvalidID          = "invalid_id"
    codeNotFound           = "not_found"
    codeNotAuthenticated   = "not_authenticated"
    codeAuthFailed         = "authentication_failed"
    codeInvalidCredentials = "invalid_credentials"
    codePermissionDenied   = "permission_denied"
    codeMethodNotAllowed   = "method_not_allowed"
    codeInternalError      = "internal_error"
)

var (
    errBadBody   = errors.New("invalid request body")
    errInvalidID = errors.New("invalid id")
)

type errorResponse struct {
    Error  string              `json:"error"`
    Code   string              `json:"code"`
    Fields map[string][]string `json:"fields,omitempty"`
}

// classify maps an error to its status and body. Unknown errors are 500.
func classify(err error) (int, errorResponse) {
    var verr *repository.ValidationError
    var herr *echo.HTTPError
    switch {
    case errors.As(err, &verr):
        return http.StatusBadRequest, errorResponse{Error: "validation failed", Code: codeValidation, Fields: verr.Fields}
    case errors.Is(err, errBadBody):
        return http.StatusBadRequest, errorResponse{Error: err.Error(), Code: codeParse}
    case errors.Is(err, errInvalidID):
        return http.StatusBadRequest, errorResponse{Error: err.Error(), Code: codeInvalidID}
    case errors.Is(err, repository.ErrNotFound):
        return http.StatusNotFound, errorResponse{Error: "not found", Code: codeNotFound}
    case errors.Is(err, access.ErrUnauthenticated):
        return http.StatusUnauthorized, errorResponse{Error: err.Error(), Code: codeNotAuthenticated}
    case errors.Is(err, service.ErrInvalidToken):
        return http.StatusUnauthorized, errorResponse{Error: err.Error(), Code: codeAuthFailed}
    case errors.Is(err, service.ErrInvalidCredentials):
        return http.StatusUnauthorized, errorResponse{Error: err.Error(), Code: codeInvalidCredentials}
    case errors.Is(err, access.ErrForbidden):
        return http.StatusForbidden, errorResponse{Error: err.Error(), Code: codePermissionDenied}
    case errors.As(err, &herr):
        return herr.Code, errorResponse{Error: http.StatusText(herr.Code), Code: httpErrorCode(herr.Code)}
    }
    return http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: codeInternalError}
}

func httpErrorCode(status int) string {
    switch status {
    case http.StatusNotFound:
        return codeNotFound
    case http.StatusMethodNotAllowed:
        return codeMethodNotAllowed
    case http.StatusUnauthorized:
        return codeNotAuthenticated
    case http.StatusForbidden:
        return codePermissionDenied
    case http.StatusBadRequest:
        return codeParse
    }
    if status >= 500 {
        return codeInternalError
    }
    return "error"
}

// writeError renders err as JSON. 500s are logged with the request id
// since the client only sees a generic message.
func writeError(c echo.Context, err error) error {
    status, body := classify(err)
    if status >= http.StatusInternalServerError {
        log.Printf("request id=%s %s %s: %v", requestID(c), c.Request().Method, c.Request().URL.Path, err)
    }
    if c.Request().Method == http.MethodHead {
        return c.NoContent(status)
    }
    return c.JSON(status, body)
}

func requestID(c echo.Context) string {
    if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
        return id
    }
    return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HTTPErrorHandler renders errors that escape handlers and middleware
// (unknown routes, wrong methods, auth refusals) in the same JSON shape.
func HTTPErrorHandler(err error, c echo.Context) {
    if c.Response().Committed {
        return
    }
    if werr := writeError(c, err); werr != nil {
        log.Printf("request id=%s: write error response: %v", requestID(c), werr)
    }
}
