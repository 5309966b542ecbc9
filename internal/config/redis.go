package config

import (
    "context"
    "crypto/tls"
    "log"
    "net"
    "os"
    "time"

    "github.com/redis/go-redis/v9"
)

const redisPingTimeout = 2 * time.Second

// LoadRedisOptions builds client options from REDIS_ADDR, or REDIS_HOST and
// REDIS_PORT when both are set, plus REDIS_PASSWORD, REDIS_DB and REDIS_TLS.
func LoadRedisOptions() *redis.Options {
    e := env{lookup: os.LookupEnv}
    addr := e.get("REDIS_ADDR", "localhost:6379")
    if host, port := e.get("REDIS_HOST", ""), e.get("REDIS_PORT", ""); host != "" && port != "" {
        addr = net.JoinHostPort(host, port)
    }
    opts := &redis.Options{
        Addr:     addr,
        Password: e.get("REDIS_PASSWORD", ""),
        DB:       e.integer("REDIS_DB", 0),
    }
    if e.boolean("REDIS_TLS", false) {
        opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
    }
    return opts
}

// NewRedisClient returns nil when the server does not answer a ping; the
// cache and rate limiter then pass requests straight through.
func NewRedisClient(ctx context.Context) *redis.Client {
    opts := LoadRedisOptions()
    client := redis.NewClient(opts)
    ctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        log.Printf("redis %s: %v", opts.Addr, err)
        _ = client.Close()
        return nil
    }
    return client
}
