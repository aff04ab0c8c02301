package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenClaims is the decoded payload of a bearer token. Beyond the
// registered claims it carries the authentication status the server encoded
// at issuance.
type TokenClaims struct {
	jwt.RegisteredClaims
	IsAuthenticated bool   `json:"isAuthenticated"`
	UserRole        Role   `json:"userRole"`
	UserID          string `json:"userId"`
}

// AuthStatus derives the publishable status from the claims.
func (c *TokenClaims) AuthStatus() AuthStatus {
	if c == nil {
		return DefaultAuthStatus()
	}
	return AuthStatus{
		IsAuthenticated: c.IsAuthenticated,
		UserRole:        c.UserRole,
		UserID:          c.UserID,
	}
}

// Expired reports whether the claims are expired at the given instant.
// Missing expiry is treated as expired, and a token whose expiry equals now
// is already expired (fail closed). The comparison scales the second-granular
// exp claim to milliseconds to match the clock's precision.
func (c *TokenClaims) Expired(now time.Time) bool {
	if c == nil || c.ExpiresAt == nil {
		return true
	}
	return c.ExpiresAt.Unix()*1000 <= now.UnixMilli()
}

// DecodeToken structurally decodes a bearer token without verifying its
// signature. This is a client display and parsing concern only: the trust
// boundary is the issuing server, so expiry and payload shape are trusted
// only insofar as the server produced them.
func DecodeToken(raw string) (*TokenClaims, error) {
	if raw == "" {
		return nil, ErrTokenMalformed
	}

	claims := &TokenClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	return claims, nil
}
