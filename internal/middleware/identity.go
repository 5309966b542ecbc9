package middleware

// identity.go holds the context keys the auth middleware fills and the
// accessors handlers use to read them back.

import (
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/theatre-reservation/internal/access"
)

const (
    callerKey = "caller"
    tokenKey  = "auth_token"
)

// CallerFrom returns the caller resolved by Authenticate, or the anonymous
// caller when the request carried no token.
func CallerFrom(c echo.Context) access.Caller {
    if v, ok := c.Get(callerKey).(access.Caller); ok {
        return v
    }
    return access.Caller{}
}

// TokenFrom returns the raw token the request authenticated with.
func TokenFrom(c echo.Context) string {
    s, _ := c.Get(tokenKey).(string)
    return s
}

// userID identifies the caller for rate limiting. Anonymous callers share
// the "anon" bucket component.
func userID(c echo.Context) string {
    if caller := CallerFrom(c); caller.Authenticated() {
        return strconv.FormatUint(caller.UserID, 10)
    }
    return "anon"
}
