// Package auth issues and verifies the HS256 bearer tokens carried by API
// clients.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload of a jobly token.
type Claims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// JWT signs and verifies tokens with a shared secret.
type JWT struct {
	secret   []byte
	duration time.Duration
	now      func() time.Time
}

// NewJWT returns a JWT issuer. A zero duration issues tokens without expiry.
func NewJWT(secret string, duration time.Duration) *JWT {
	return &JWT{secret: []byte(secret), duration: duration, now: time.Now}
}

// NewToken issues a signed token for username.
func (j *JWT) NewToken(username string, isAdmin bool) (string, error) {
	now := j.now()
	claims := Claims{
		Username: username,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  username,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if j.duration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(j.duration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Verify parses tokenString and returns its claims. Tokens signed with a
// different method or secret, or past their expiry, yield ErrInvalidToken.
func (j *JWT) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithTimeFunc(j.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Username == "" {
		return nil, fmt.Errorf("%w: missing username", ErrInvalidToken)
	}

	return claims, nil
}
