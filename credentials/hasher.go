package credentials

import (
	"fmt"
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	gateerrors "github.com/jrsteele09/go-admin-gate/internal/errors"
)

// HashPassword hashes a plaintext password with bcrypt at the given cost.
// A cost outside bcrypt's supported range falls back to the default.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", errors.Wrap(err, "[HashPassword] bcrypt.GenerateFromPassword")
	}
	return string(bytes), nil
}

// CheckPasswordHash reports whether password matches hash. Any failure,
// including a malformed hash, reads as a mismatch.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// VerifyPassword is CheckPasswordHash with the malformed-hash case split out:
// a stored hash that bcrypt cannot parse returns ErrInvalidHashFormat rather
// than reading as a wrong password.
func VerifyPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, gateerrors.Wrapf(gateerrors.ErrInvalidHashFormat, "[VerifyPassword] %v", err)
	}
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}
