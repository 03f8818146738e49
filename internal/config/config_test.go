package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")
	for _, key := range []string{
		"PORT", "APP_ENV", "CORS_ORIGIN",
		"JWT_EXPIRES_IN", "JWT_REFRESH_EXPIRES_IN", "BCRYPT_SALT_ROUNDS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Port)
	}
	if cfg.JWT.AccessTTL != 15*time.Minute {
		t.Errorf("AccessTTL = %v, want 15m", cfg.JWT.AccessTTL)
	}
	if cfg.JWT.RefreshTTL != 168*time.Hour {
		t.Errorf("RefreshTTL = %v, want 168h", cfg.JWT.RefreshTTL)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
	if cfg.IsProduction() {
		t.Error("IsProduction() = true without APP_ENV=production")
	}
}

func TestLoadRejectsMissingSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() succeeded without JWT_SECRET")
	}

	t.Setenv("JWT_SECRET", "only-access")
	if _, err := Load(); err == nil {
		t.Fatal("Load() succeeded without JWT_REFRESH_SECRET")
	}
}

func TestLoadRejectsEqualSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "same")
	t.Setenv("JWT_REFRESH_SECRET", "same")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted identical access and refresh secrets")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad-access-ttl", "JWT_EXPIRES_IN", "15 minutes"},
		{"bad-refresh-ttl", "JWT_REFRESH_EXPIRES_IN", "7d"},
		{"bad-cost", "BCRYPT_SALT_ROUNDS", "lots"},
		{"cost-out-of-range", "BCRYPT_SALT_ROUNDS", "99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("Load() accepted %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestSplitOrigins(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ORIGIN", "https://app.example.com, https://admin.example.com,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("CORSOrigins = %v, want 2 entries", cfg.CORSOrigins)
	}
	if cfg.CORSOrigins[0] != "https://app.example.com" {
		t.Errorf("first origin = %q", cfg.CORSOrigins[0])
	}
}
