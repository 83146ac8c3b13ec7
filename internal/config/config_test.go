package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	os.Unsetenv("ENVIRONMENT")
	os.Unsetenv("JWT_ACCESS_TOKEN_TTL")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.IsProduction() {
		t.Error("Expected development environment by default")
	}
	if cfg.JWT.AccessTokenTTL != 20*time.Minute {
		t.Errorf("Expected default token TTL of 20m, got %v", cfg.JWT.AccessTokenTTL)
	}
	if cfg.GetServerAddr() != "0.0.0.0:8080" {
		t.Errorf("Unexpected server addr %s", cfg.GetServerAddr())
	}
}

func TestLoadConfig_TokenTTLOverride(t *testing.T) {
	os.Setenv("JWT_ACCESS_TOKEN_TTL", "1h")
	defer os.Unsetenv("JWT_ACCESS_TOKEN_TTL")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.JWT.AccessTokenTTL != time.Hour {
		t.Errorf("Expected 1h token TTL, got %v", cfg.JWT.AccessTokenTTL)
	}
}

func TestLoadConfig_ProductionRequiresSecret(t *testing.T) {
	os.Setenv("ENVIRONMENT", "production")
	os.Unsetenv("JWT_SECRET_KEY")
	defer os.Unsetenv("ENVIRONMENT")

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected error for default JWT secret in production")
	}
}
