package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/christianotieno/product-catalog/internal/core/domain"
	"github.com/christianotieno/product-catalog/internal/core/ports"
)

const defaultTTL = 24 * time.Hour

// Codec issues and verifies HS256-signed JWTs. The signing key is set
// once at construction and never rotated at runtime.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec constructs a Codec. A non-positive ttl falls back to 24 hours.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

var _ ports.TokenCodec = (*Codec)(nil)

type jwtClaims struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token embedding the subject (email), user id, and role,
// valid from now until now plus the configured lifetime.
func (c *Codec) Issue(claims ports.TokenClaims) (string, error) {
	now := time.Now().UTC()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		UserID: claims.UserID,
		Role:   claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})
	return t.SignedString(c.secret)
}

// Verify checks signature and expiry and returns the embedded claims.
func (c *Codec) Verify(token string) (*ports.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}

	return &ports.TokenClaims{
		Subject: claims.Subject,
		UserID:  claims.UserID,
		Role:    claims.Role,
	}, nil
}
