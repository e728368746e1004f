// Package auth issues and verifies the session token carried in the
// "token" cookie.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "token"
	DefaultTTL = time.Hour
)

var (
	ErrMissingSecret = errors.New("token signing secret is not configured")
	ErrMissingEmail  = errors.New("identity claim has no email")
	ErrInvalidToken  = errors.New("invalid token")
)

// Claims is the identity carried by a session token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenCodec(secret string, ttl time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for email that expires one TTL from now.
func (c *TokenCodec) Issue(email string) (string, error) {
	if email == "" {
		return "", ErrMissingEmail
	}
	now := c.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded identity.
func (c *TokenCodec) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
