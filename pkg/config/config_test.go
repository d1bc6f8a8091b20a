package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if cfg.Strapi.BaseURL != "https://admin.example.com" {
		t.Fatalf("unexpected Strapi URL: %q", cfg.Strapi.BaseURL)
	}
	if cfg.Medusa.Timeout != 10*time.Second {
		t.Fatalf("expected default medusa timeout 10s, got %v", cfg.Medusa.Timeout)
	}
	if cfg.Cache.PageTTL != 10*time.Minute {
		t.Fatalf("expected default page TTL 10m, got %v", cfg.Cache.PageTTL)
	}
	if cfg.Contact.FlushBatchSize != 20 {
		t.Fatalf("expected default flush batch 20, got %d", cfg.Contact.FlushBatchSize)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv("STOREFRONT_MEDUSA_URL"); err != nil {
		t.Fatalf("failed to unset medusa url: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestAppConfigEnvHelpers(t *testing.T) {
	if !(AppConfig{Env: "Production"}).IsProd() {
		t.Fatal("expected case-insensitive production match")
	}
	if !(AppConfig{Env: "development"}).IsDev() {
		t.Fatal("expected development match")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv("STOREFRONT_APP_ENV", "production")
	t.Setenv("STOREFRONT_APP_PORT", "8080")
	t.Setenv("STOREFRONT_STRAPI_URL", "https://admin.example.com")
	t.Setenv("STOREFRONT_MEDUSA_URL", "https://api.example.com")
	t.Setenv("STOREFRONT_REDIS_URL", "redis://localhost:6379/0")
}
