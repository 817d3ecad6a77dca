package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultTTL = time.Hour

// Codec signs session claims into opaque tokens and verifies tokens back into
// claims. A Codec is immutable after construction and safe for concurrent use.
type Codec struct {
	signer  Signer
	ttl     time.Duration
	nowFunc func() time.Time
}

// CodecOption defines a function type to modify the Codec instance.
type CodecOption func(*Codec)

// WithTTL sets the session validity window (default 1 hour).
func WithTTL(ttl time.Duration) CodecOption {
	return func(c *Codec) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithNowFunc sets the now time function (primarily for testing)
func WithNowFunc(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowFunc = now
	}
}

// NewCodec creates a Codec signing with the given signer.
func NewCodec(signer Signer, options ...CodecOption) (*Codec, error) {
	if signer == nil {
		return nil, errors.New("[NewCodec] signer is required")
	}

	codec := &Codec{
		signer:  signer,
		ttl:     defaultTTL,
		nowFunc: time.Now,
	}

	for _, opt := range options {
		opt(codec)
	}

	return codec, nil
}

// TTL returns the validity window applied to issued tokens.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue mints a fresh session token whose expiry is exactly TTL from now.
func (c *Codec) Issue() (string, Claims, error) {
	now := c.nowFunc()
	claims := Claims{
		Subject:   SubjectAdmin,
		IssuedAt:  now,
		ExpiresAt: now.Add(c.ttl),
		TokenID:   uuid.New().String(),
	}

	token, err := c.signer.Sign(jwt.MapClaims{
		"sub": claims.Subject,
		"iat": claims.IssuedAt.Unix(),
		"exp": claims.ExpiresAt.Unix(),
		"jti": claims.TokenID,
	})
	if err != nil {
		return "", Claims{}, errors.Wrap(err, "[Codec.Issue] signer.Sign")
	}

	return token, claims, nil
}

// Verify parses and checks a session token, returning its claims or nil. A
// nil result covers every failure - bad signature, wrong algorithm, malformed
// payload, and expiry - without distinguishing between them.
func (c *Codec) Verify(rawToken string) *Claims {
	if rawToken == "" {
		return nil
	}

	// Expiry is checked below against the codec's clock, not the parser's.
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.Parse(rawToken, c.signer.GetVerificationKey)
	if err != nil || !token.Valid {
		return nil
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	sub, _ := mapClaims["sub"].(string)
	iat, _ := mapClaims["iat"].(float64)
	exp, _ := mapClaims["exp"].(float64)
	jti, _ := mapClaims["jti"].(string)

	if sub != SubjectAdmin || exp == 0 {
		return nil
	}

	expiresAt := time.Unix(int64(exp), 0)
	if !c.nowFunc().Before(expiresAt) {
		return nil
	}

	return &Claims{
		Subject:   sub,
		IssuedAt:  time.Unix(int64(iat), 0),
		ExpiresAt: expiresAt,
		TokenID:   jti,
	}
}
