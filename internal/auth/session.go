// Package auth issues and parses the signed session tokens that back the
// session pointer. The client stores one token in its local store; the
// reference server verifies the same token when it arrives as a bearer header.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/ideaboard/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the session email in the standard subject claim.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// GenerateToken signs a session token for email. A non-positive validity
// issues a token without expiry.
func GenerateToken(email string, secretKey []byte, validity time.Duration, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  email,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Email: email,
	}
	if validity > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(validity))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return tokenString, nil
}

// EmailFromToken verifies the token signature and expiry and returns the
// session email. Any failure is reported as common.ErrInvalidToken.
func EmailFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: expired", common.ErrInvalidToken)
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Email == "" || claims.Email != claims.Subject {
		return "", common.ErrInvalidToken
	}

	return claims.Email, nil
}
