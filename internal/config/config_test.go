package config

import "testing"

func setSecrets(t *testing.T, access, refresh string) {
	t.Helper()
	t.Setenv("AUTH_ACCESS_TOKEN_SECRET", access)
	t.Setenv("AUTH_REFRESH_TOKEN_SECRET", refresh)
}

func TestLoadFailsWithoutSecrets(t *testing.T) {
	setSecrets(t, "", "")
	if _, err := Load(); err == nil {
		t.Fatal("Load must fail when signing secrets are absent")
	}

	setSecrets(t, "access-only", "")
	if _, err := Load(); err == nil {
		t.Fatal("Load must fail when the refresh secret is absent")
	}
}

func TestLoadFailsWithIdenticalSecrets(t *testing.T) {
	setSecrets(t, "same-secret", "same-secret")
	if _, err := Load(); err == nil {
		t.Fatal("Load must reject identical access and refresh secrets")
	}
}

func TestLoadDefaults(t *testing.T) {
	setSecrets(t, "access-secret", "refresh-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.AccessTokenTTLMinutes != 15 {
		t.Errorf("access TTL = %d, want 15", cfg.Auth.AccessTokenTTLMinutes)
	}
	if cfg.Auth.RefreshTokenTTLHours != 168 {
		t.Errorf("refresh TTL = %d, want 168", cfg.Auth.RefreshTokenTTLHours)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("bcrypt cost = %d, want 12", cfg.Auth.BcryptCost)
	}
	if cfg.Auth.SecureCookies {
		t.Error("secure cookies should be off outside production")
	}
}

func TestLoadProductionFlipsCookieFlags(t *testing.T) {
	setSecrets(t, "access-secret", "refresh-secret")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Auth.SecureCookies || !cfg.Auth.StrictSameSiteCookies {
		t.Error("production must enable secure, strict-same-site cookies")
	}
}
