package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const specialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value. A malformed
// hash yields a mismatch error, never a panic.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// ValidatePasswordStrength checks every strength rule independently and
// returns all violations so callers can present a complete checklist. An empty
// slice means the password is acceptable.
func ValidatePasswordStrength(password string) []string {
	var violations []string

	if len(password) < 8 {
		violations = append(violations, "password must be at least 8 characters long")
	}
	// bcrypt only hashes the first 72 bytes and rejects longer inputs.
	if len(password) > 72 {
		violations = append(violations, "password must be at most 72 characters long")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		violations = append(violations, "password must contain at least one uppercase letter")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		violations = append(violations, "password must contain at least one lowercase letter")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }) {
		violations = append(violations, "password must contain at least one digit")
	}
	if !strings.ContainsAny(password, specialChars) {
		violations = append(violations, "password must contain at least one special character")
	}

	return violations
}
