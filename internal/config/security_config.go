package config

import "os"

type SecurityConfig interface {
	GetRequireStrongPassword() bool
	GetEnableRateLimiting() bool
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetRequireStrongPassword controls whether initial setup enforces password
// strength rules. Off by default to match the original behaviour, which
// accepted any non-empty password.
func (Security) GetRequireStrongPassword() bool {
	return os.Getenv("SESSION_REQUIRE_STRONG_PASSWORD") == "true"
}

func (Security) GetEnableRateLimiting() bool {
	return false // Not yet implemented
}
