package config

import (
	"testing"
	"time"
)

func TestLoadParsesAccessTokenTTL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/woninglabel_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ACCESS_TTL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AccessTokenTTL != 30*time.Minute {
		t.Errorf("access token ttl = %v, want 30m", cfg.AccessTokenTTL)
	}
}

func TestLoadAccessTokenTTLFallsBackOnBadValue(t *testing.T) {
	for _, value := range []string{"not-a-duration", "0s", "-5m"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost/woninglabel_test")
			t.Setenv("JWT_SECRET", "test-secret")
			t.Setenv("JWT_ACCESS_TTL", value)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if cfg.AccessTokenTTL != 8*time.Hour {
				t.Errorf("access token ttl = %v, want the 8h default", cfg.AccessTokenTTL)
			}
		})
	}
}
