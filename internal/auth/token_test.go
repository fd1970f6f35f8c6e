package auth

import (
	"testing"
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

func newTestManager(accessTTL, refreshTTL time.Duration) *TokenManager {
	return NewTokenManager("access-secret", accessTTL, "refresh-secret", refreshTTL)
}

func TestIssuePairRoundTrip(t *testing.T) {
	tm := newTestManager(time.Minute, time.Hour)

	pair, err := tm.IssuePair("user-1", "a@b.com", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	claims, err := tm.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("VerifyAccess: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "a@b.com" || claims.Role != domain.RoleCustomer {
		t.Errorf("claims mismatch: %+v", claims)
	}

	refreshClaims, err := tm.VerifyRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("VerifyRefresh: %v", err)
	}
	if refreshClaims.UserID != "user-1" {
		t.Errorf("refresh claims mismatch: %+v", refreshClaims)
	}
}

func TestVerifyAccessRejectsExpired(t *testing.T) {
	tm := &TokenManager{
		accessSecret:  []byte("access-secret"),
		accessTTL:     -time.Minute,
		refreshSecret: []byte("refresh-secret"),
		refreshTTL:    -time.Minute,
	}

	pair, err := tm.IssuePair("user-1", "a@b.com", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	if _, err := tm.VerifyAccess(pair.AccessToken); err != ErrInvalidToken {
		t.Errorf("expired access token: got %v, want ErrInvalidToken", err)
	}
	if _, err := tm.VerifyRefresh(pair.RefreshToken); err != ErrInvalidToken {
		t.Errorf("expired refresh token: got %v, want ErrInvalidToken", err)
	}
}

func TestCrossSecretRejection(t *testing.T) {
	tm := newTestManager(time.Minute, time.Hour)

	pair, err := tm.IssuePair("user-1", "a@b.com", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	// A refresh token must never verify as an access token and vice versa.
	if _, err := tm.VerifyAccess(pair.RefreshToken); err != ErrInvalidToken {
		t.Errorf("refresh token as access token: got %v, want ErrInvalidToken", err)
	}
	if _, err := tm.VerifyRefresh(pair.AccessToken); err != ErrInvalidToken {
		t.Errorf("access token as refresh token: got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyAccessUniformFailure(t *testing.T) {
	tm := newTestManager(time.Minute, time.Hour)

	other := NewTokenManager("other-secret", time.Minute, "other-refresh", time.Hour)
	forged, err := other.IssuePair("user-1", "a@b.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	for name, token := range map[string]string{
		"malformed":    "not.a.jwt",
		"empty":        "",
		"wrong secret": forged.AccessToken,
	} {
		if _, err := tm.VerifyAccess(token); err != ErrInvalidToken {
			t.Errorf("%s: got %v, want ErrInvalidToken", name, err)
		}
	}
}

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"case insensitive scheme", "bearer token123", "token123"},
		{"empty", "", ""},
		{"no scheme", "abc.def.ghi", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractBearer(tt.header); got != tt.want {
				t.Errorf("ExtractBearer(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}
