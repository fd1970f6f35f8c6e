package auth

import (
	"strings"
	"testing"
)

func TestHashAndComparePassword(t *testing.T) {
	const password = "Str0ng!Pass"

	first, err := HashPassword(password, 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword(password, 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if first == second {
		t.Fatal("two hashes of the same password must differ (per-call salt)")
	}
	if err := ComparePassword(first, password); err != nil {
		t.Errorf("first hash should verify: %v", err)
	}
	if err := ComparePassword(second, password); err != nil {
		t.Errorf("second hash should verify: %v", err)
	}
	if err := ComparePassword(first, "WrongPass1!"); err == nil {
		t.Error("wrong password must not verify")
	}
}

func TestComparePasswordMalformedHash(t *testing.T) {
	if err := ComparePassword("not-a-bcrypt-hash", "anything"); err == nil {
		t.Fatal("malformed hash must not verify")
	}
}

func TestValidatePasswordStrengthReportsAllViolations(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     int
	}{
		{"strong", "Str0ng!Pass", 0},
		{"empty", "", 5},
		{"short lowercase only", "abc", 4},
		{"missing digit and symbol", "Abcdefgh", 2},
		{"missing uppercase", "abcdefg1!", 1},
		{"missing symbol", "Abcdefg1", 1},
		{"over bcrypt 72-byte limit", "Aa1!" + strings.Repeat("x", 70), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := ValidatePasswordStrength(tt.password)
			if len(violations) != tt.want {
				t.Errorf("got %d violations %v, want %d", len(violations), violations, tt.want)
			}
		})
	}
}

func TestValidatePasswordStrengthSpecialSet(t *testing.T) {
	for _, ch := range strings.Split(specialChars, "") {
		if violations := ValidatePasswordStrength("Abcdefg1" + ch); len(violations) != 0 {
			t.Errorf("password with special char %q should pass, got %v", ch, violations)
		}
	}
}
