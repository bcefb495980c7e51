package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "STORE_DRIVER", "JWT_SECRET", "JWT_TTL", "BCRYPT_COST", "CORS_ALLOWED_ORIGINS", "REDIS_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Server.Port != "5000" {
		t.Errorf("expected port 5000, got %s", cfg.Server.Port)
	}
	if cfg.Store.Driver != StorePostgres {
		t.Errorf("expected postgres store, got %s", cfg.Store.Driver)
	}
	if cfg.Auth.TokenTTL != 7*24*time.Hour {
		t.Errorf("expected 7 day ttl, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("expected bcrypt cost 10, got %d", cfg.Auth.BcryptCost)
	}
	if !cfg.Auth.UsesDefaultSecret() {
		t.Error("expected default secret to be reported")
	}
	if !cfg.Redis.Enabled {
		t.Error("expected redis enabled by default")
	}
	if len(cfg.Server.AllowedOrigins) != 0 {
		t.Errorf("expected no origins, got %v", cfg.Server.AllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MONGO")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("BCRYPT_COST", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, ,https://app.example.com")
	t.Setenv("REDIS_ENABLED", "false")

	cfg := Load()

	if cfg.Store.Driver != StoreMongo {
		t.Errorf("expected mongo store, got %s", cfg.Store.Driver)
	}
	if cfg.Auth.UsesDefaultSecret() || cfg.Auth.JWTSecret != "s3cret" {
		t.Errorf("unexpected secret %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Errorf("expected 1h ttl, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("expected fallback cost 10, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Redis.Enabled {
		t.Error("expected redis disabled")
	}

	want := []string{"http://localhost:5173", "https://app.example.com"}
	if len(cfg.Server.AllowedOrigins) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.Server.AllowedOrigins)
	}
	for i := range want {
		if cfg.Server.AllowedOrigins[i] != want[i] {
			t.Errorf("origin %d: expected %s, got %s", i, want[i], cfg.Server.AllowedOrigins[i])
		}
	}
}
