package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "QUOTA_ALLOW_NEGATIVE", "QUOTA_DEFAULT_WEEKLY", "STATS_CACHE_TTL_SECONDS", "REDIS_DB"} {
		t.Setenv(key, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Port != "8080" || cfg.Quota.AllowNegative || cfg.Quota.DefaultWeeklyQuota != 20 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Stats.CacheTTL() != time.Minute {
		t.Fatalf("cache ttl = %v", cfg.Stats.CacheTTL())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("QUOTA_ALLOW_NEGATIVE", "true")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "5")
	t.Setenv("STATS_CACHE_TTL_SECONDS", "0")
	t.Setenv("AUTH_BCRYPT_COST", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Addr() != "127.0.0.1:9090" {
		t.Fatalf("addr = %s", cfg.App.Addr())
	}
	if !cfg.Quota.AllowNegative {
		t.Fatal("allow negative not applied")
	}
	if cfg.App.RequestTimeout() != 5*time.Second {
		t.Fatalf("timeout = %v", cfg.App.RequestTimeout())
	}
	if cfg.Stats.CacheTTL() != 0 {
		t.Fatal("zero ttl should disable the cache")
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Fatalf("bcrypt cost = %d, want fallback 12", cfg.Auth.BcryptCost)
	}
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "x")
	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}
}
