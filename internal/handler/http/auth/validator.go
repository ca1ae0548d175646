package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

var weakPasswordList = []string{
	"admin", "password", "123456", "secret", "admin123", "password123",
	"123456789", "12345678", "qwerty", "abc123", "letmein", "welcome",
	"monkey", "1234567890", "password1", "admin1", "test", "test123",
	"default", "root",
}

var keyboardPatterns = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm", "qwerty", "asdfgh", "zxcvb"}

const (
	minPasswordLength = 12
	minSecretLength   = 32
)

// ValidateAdminCredentials checks ADMIN_USER and ADMIN_USER_PASSWORD at startup.
// The server must not start with empty or weak admin credentials.
func ValidateAdminCredentials() error {
	user := os.Getenv("ADMIN_USER")
	pass := os.Getenv("ADMIN_USER_PASSWORD")

	if user == "" {
		return errors.New("admin credentials validation failed: ADMIN_USER must not be empty")
	}
	if pass == "" {
		return errors.New("admin credentials validation failed: ADMIN_USER_PASSWORD must not be empty")
	}
	if err := checkPasswordStrength(pass); err != nil {
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD %w", err)
	}
	return nil
}

func checkPasswordStrength(pass string) error {
	if len(pass) < minPasswordLength {
		return fmt.Errorf("must be at least %d characters (current length: %d)", minPasswordLength, len(pass))
	}
	// numeric and keyboard patterns are checked first so they get a precise message
	if isSimpleNumericPattern(pass) {
		return errors.New("must not be a simple numeric pattern")
	}
	if isKeyboardPattern(pass) {
		return errors.New("must not be a keyboard pattern")
	}
	lower := strings.ToLower(pass)
	for _, weak := range weakPasswordList {
		if lower == weak {
			return errors.New("must not be a weak password")
		}
		if strings.HasPrefix(lower, weak) && len(pass) < minPasswordLength+5 {
			return errors.New("must not be based on common weak passwords")
		}
	}
	return nil
}

// ValidateViewerCredentials disables the viewer role when DEMO_USER is
// misconfigured. It never fails startup.
func ValidateViewerCredentials(logger *slog.Logger) {
	demoUser := os.Getenv("DEMO_USER")
	demoPass := os.Getenv("DEMO_USER_PASSWORD")

	disable := func(reason string) {
		logger.Warn(reason + " - disabling viewer role")
		_ = os.Unsetenv("DEMO_USER")
		_ = os.Unsetenv("DEMO_USER_PASSWORD")
	}

	switch {
	case demoUser == "":
		logger.Info("viewer role not configured - running in admin-only mode")
	case demoPass == "":
		disable("DEMO_USER_PASSWORD is empty")
	case demoUser == os.Getenv("ADMIN_USER"):
		disable("DEMO_USER cannot be the same as ADMIN_USER")
	case checkPasswordStrength(demoPass) != nil:
		disable("DEMO_USER_PASSWORD is too weak")
	default:
		logger.Info("viewer role configured", slog.String("user", demoUser))
	}
}

// ValidateJWTSecret enforces a 256-bit minimum and rejects well-known values.
func ValidateJWTSecret(secret string) error {
	if secret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if len(secret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLength)
	}
	lower := strings.ToLower(secret)
	for _, weak := range []string{"secret", "password", "changeme"} {
		if strings.Trim(lower, "0123456789") == weak || strings.Repeat(weak, len(lower)/len(weak)) == lower {
			return errors.New("JWT_SECRET must not be a common weak value")
		}
	}
	if isRepeatedChar(secret) {
		return errors.New("JWT_SECRET must not be a repeated character")
	}
	return nil
}

func isSimpleNumericPattern(pass string) bool {
	if isRepeatedChar(pass) {
		return true
	}
	for _, ch := range pass {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	asc, desc := true, true
	for i := 1; i < len(pass); i++ {
		diff := int(pass[i]) - int(pass[i-1])
		if diff != 1 && diff != -9 {
			asc = false
		}
		if diff != -1 && diff != 9 {
			desc = false
		}
	}
	return asc || desc
}

func isRepeatedChar(s string) bool {
	if s == "" {
		return false
	}
	return strings.Count(s, s[:1]) == len(s)
}

func isKeyboardPattern(pass string) bool {
	lower := strings.ToLower(pass)
	for _, pattern := range keyboardPatterns {
		if strings.Contains(lower, pattern) || strings.Contains(lower, reverse(pattern)) {
			return true
		}
	}
	return false
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
