package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/theatre-reservation/internal/config"
)

// cachedResponse is what a cache entry stores.
type cachedResponse struct {
    Status int         `json:"s"`
    Header http.Header `json:"h"`
    Body   []byte      `json:"b"`
}

// teeWriter forwards to the client and keeps up to limit bytes of the body.
type teeWriter struct {
    http.ResponseWriter
    status    int
    body      bytes.Buffer
    limit     int
    truncated bool
}

func (w *teeWriter) WriteHeader(code int) {
    w.status = code
    w.ResponseWriter.WriteHeader(code)
}

func (w *teeWriter) Write(b []byte) (int, error) {
    if !w.truncated {
        if w.limit > 0 && w.body.Len()+len(b) > w.limit {
            w.truncated = true
        } else {
            w.body.Write(b)
        }
    }
    return w.ResponseWriter.Write(b)
}

// cacheKeyFrom builds prefix:v<version>:sha1(...). The concrete URL path is
// used rather than the route pattern so /plays/1/ and /plays/2/ differ.
func cacheKeyFrom(cfg config.CacheConfig, version int64, c echo.Context) string {
    u := c.Request().URL
    h := sha1.New()
    h.Write([]byte(u.Path))
    if !strings.EqualFold(cfg.KeyStrategy, "path") && u.RawQuery != "" {
        h.Write([]byte("?" + u.RawQuery))
    }
    return fmt.Sprintf("%s:v%d:%x", cfg.Prefix, version, h.Sum(nil))
}

// replayable reports whether a stored header belongs to the resource rather
// than to the request that produced it.
func replayable(key string) bool {
    switch k := http.CanonicalHeaderKey(key); {
    case k == echo.HeaderContentLength, k == echo.HeaderXRequestID, k == "X-Cache", k == echo.HeaderRetryAfter:
        return false
    case strings.HasPrefix(k, "X-Ratelimit-"):
        return false
    }
    return true
}

func storableHeader(h http.Header) http.Header {
    out := make(http.Header, len(h))
    for k, vals := range h {
        if replayable(k) {
            out[k] = append([]string(nil), vals...)
        }
    }
    return out
}

func replay(c echo.Context, raw []byte) bool {
    var cr cachedResponse
    if err := json.Unmarshal(raw, &cr); err != nil || cr.Status == 0 {
        return false
    }
    dst := c.Response().Header()
    for k, vals := range cr.Header {
        if replayable(k) {
            dst[k] = vals
        }
    }
    dst.Set("X-Cache", "HIT")
    c.Response().WriteHeader(cr.Status)
    _, _ = c.Response().Write(cr.Body)
    return true
}

// cacheVersion reads the global write counter; a missing key is version 0.
func cacheVersion(ctx context.Context, rdb *redis.Client, key string) (int64, error) {
    v, err := rdb.Get(ctx, key).Int64()
    if errors.Is(err, redis.Nil) {
        return 0, nil
    }
    return v, err
}

// NewRedisCache caches successful GET responses (headers and body) and
// bumps the version key after every successful write, which orphans all
// earlier entries at once. Cascading deletes therefore never leave a stale
// list or detail cached. Any Redis failure degrades to pass-through.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 30 * time.Second
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            ctx := c.Request().Context()
            if c.Request().Method != http.MethodGet {
                if err := next(c); err != nil {
                    return err
                }
                if st := c.Response().Status; st >= 200 && st < 400 {
                    if err := rdb.Incr(context.WithoutCancel(ctx), cfg.VersionKey).Err(); err != nil {
                        log.Printf("cache: bump version failed: %v", err)
                    }
                }
                return nil
            }

            version, err := cacheVersion(ctx, rdb, cfg.VersionKey)
            if err != nil {
                return next(c)
            }
            key := cacheKeyFrom(cfg, version, c)

            if raw, err := rdb.Get(ctx, key).Bytes(); err == nil && replay(c, raw) {
                return nil
            }

            tw := &teeWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
            c.Response().Writer = tw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }
            if tw.status != http.StatusOK || tw.truncated {
                return nil
            }
            entry, err := json.Marshal(cachedResponse{
                Status: tw.status,
                Header: storableHeader(c.Response().Header()),
                Body:   tw.body.Bytes(),
            })
            if err == nil {
                _ = rdb.SetEx(context.WithoutCancel(ctx), key, entry, ttl).Err()
            }
            return nil
        }
    }
}
