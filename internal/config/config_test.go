package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("default port: got %s", cfg.App.Port)
	}
	if cfg.Auth.AllowedEmailDomain != "colegioeccos.com.br" {
		t.Fatalf("default domain: got %s", cfg.Auth.AllowedEmailDomain)
	}
	if cfg.Auth.RootAdminEmail != "suporte@colegioeccos.com.br" {
		t.Fatalf("default root admin: got %s", cfg.Auth.RootAdminEmail)
	}
	if !cfg.Postgres.RunMigrations {
		t.Fatalf("migrations must default on")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_ALLOWED_EMAIL_DOMAIN", "example.org")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "5")
	t.Setenv("NOTIFY_ADMIN_CACHE_TTL_SECONDS", "120")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.App.Addr() != "0.0.0.0:9090" {
		t.Fatalf("addr: got %s", cfg.App.Addr())
	}
	if cfg.Auth.AllowedEmailDomain != "example.org" {
		t.Fatalf("domain override lost: %s", cfg.Auth.AllowedEmailDomain)
	}
	if cfg.App.RequestTimeout() != 5*time.Second {
		t.Fatalf("timeout: got %v", cfg.App.RequestTimeout())
	}
	if cfg.Notification.AdminCacheTTL() != 2*time.Minute {
		t.Fatalf("cache ttl: got %v", cfg.Notification.AdminCacheTTL())
	}
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatalf("invalid REDIS_DB must fail")
	}
}
