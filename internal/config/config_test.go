package config

import (
	"strings"
	"testing"
	"time"
)

func lookupFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func baseEnv() map[string]string {
	return map[string]string{
		"APP_ENV":    "test",
		"APP_PORT":   "8080",
		"DB_USER":    "theatre",
		"DB_HOST":    "127.0.0.1",
		"DB_PORT":    "3306",
		"DB_NAME":    "theatre",
		"JWT_SECRET": "secret",
	}
}

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(lookupFrom(baseEnv()))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.BcryptCost != 10 || cfg.PasswordMinLength != 5 {
		t.Errorf("unexpected password defaults: %+v", cfg)
	}
	if cfg.AccessPolicy != "staff" || cfg.QueueEnabled || cfg.BookingLogDir != "logs" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !strings.HasPrefix(cfg.RabbitURL, "amqp://") {
		t.Errorf("unexpected RabbitURL %q", cfg.RabbitURL)
	}
}

func TestLoadFromOverrides(t *testing.T) {
	env := baseEnv()
	env["BCRYPT_COST"] = "4"
	env["ACCESS_POLICY"] = "Authenticated"
	env["QUEUE_ENABLED"] = "yes"
	env["AMQP_URL"] = "amqp://mq:5672/"
	env["STAFF_USERNAME"] = "admin"
	cfg, err := LoadFrom(lookupFrom(env))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.BcryptCost != 4 || cfg.AccessPolicy != "authenticated" || !cfg.QueueEnabled || cfg.RabbitURL != "amqp://mq:5672/" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.StaffUsername != "admin" || cfg.StaffPassword != "" {
		t.Fatalf("unexpected staff settings: %+v", cfg)
	}
}

func TestLoadFromErrors(t *testing.T) {
	tests := []struct {
		name string
		edit func(map[string]string)
		want string
	}{
		{"missing secret", func(m map[string]string) { delete(m, "JWT_SECRET") }, "JWT_SECRET"},
		{"empty port", func(m map[string]string) { m["APP_PORT"] = "" }, "APP_PORT"},
		{"bad cost", func(m map[string]string) { m["BCRYPT_COST"] = "ten" }, "BCRYPT_COST"},
		{"bad policy", func(m map[string]string) { m["ACCESS_POLICY"] = "owner" }, "ACCESS_POLICY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := baseEnv()
			tt.edit(env)
			_, err := LoadFrom(lookupFrom(env))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %s, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 || cfg.RefillTokens != 1 || cfg.RefillInterval != 2*time.Second {
		t.Fatalf("unexpected clamp result %+v", cfg)
	}
	if cfg.TTL != 10*time.Second {
		t.Fatalf("expected TTL raised to 10s, got %s", cfg.TTL)
	}
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_PREFIX", "x")
	t.Setenv("CACHE_ENABLED", "false")
	cfg := LoadCacheConfig()
	if cfg.Enabled || cfg.VersionKey != "x:version" || cfg.TTL != 30*time.Second {
		t.Fatalf("unexpected cache config %+v", cfg)
	}
}

func TestLoadRedisOptions(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REDIS_TLS", "1")
	opts := LoadRedisOptions()
	if opts.Addr != "cache:6380" || opts.DB != 3 || opts.TLSConfig == nil {
		t.Fatalf("unexpected options %+v", opts)
	}
	t.Setenv("REDIS_HOST", "r")
	t.Setenv("REDIS_PORT", "1")
	if got := LoadRedisOptions().Addr; got != "r:1" {
		t.Fatalf("host/port should win, got %s", got)
	}
}
