package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionSecretEnvVar = "SESSION_SECRET"
	sessionTTLEnvVar    = "SESSION_TTL"
	bcryptCostEnvVar    = "BCRYPT_COST"

	// fallbackSessionSecret keeps the server usable when SESSION_SECRET is
	// unset. Tokens signed with it are forgeable, so its use is logged loudly.
	fallbackSessionSecret = "insecure-fallback-session-secret"

	defaultSessionTTL = time.Hour
)

type SessionConfig interface {
	GetSessionSecret() string
	GetSessionTTL() time.Duration
	GetBcryptCost() int
}

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetSessionSecret() string {
	secret := os.Getenv(sessionSecretEnvVar)
	if secret == "" {
		log.Warn().Msgf("%s is not set, using fallback secret key", sessionSecretEnvVar)
		return fallbackSessionSecret
	}
	return secret
}

// GetSessionTTL returns the session validity window. SESSION_TTL accepts any
// time.Duration string (e.g. "30m", "2h"); invalid values fall back to 1 hour.
func (Session) GetSessionTTL() time.Duration {
	value := os.Getenv(sessionTTLEnvVar)
	if value == "" {
		return defaultSessionTTL
	}
	ttl, err := time.ParseDuration(value)
	if err != nil || ttl <= 0 {
		log.Warn().Str("value", value).Msgf("invalid %s, using default", sessionTTLEnvVar)
		return defaultSessionTTL
	}
	return ttl
}

// GetBcryptCost returns the bcrypt work factor used when hashing the admin
// password. The default matches the original deployment (cost 10).
func (Session) GetBcryptCost() int {
	value := os.Getenv(bcryptCostEnvVar)
	if value == "" {
		return bcrypt.DefaultCost
	}
	cost, err := strconv.Atoi(value)
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		log.Warn().Str("value", value).Msgf("invalid %s, using default", bcryptCostEnvVar)
		return bcrypt.DefaultCost
	}
	return cost
}
