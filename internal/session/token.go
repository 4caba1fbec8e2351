package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired decodes the token claims without verifying the signature
// (verification is the backend's job) and checks the expiry. Tokens that
// cannot be decoded or carry no expiry are not treated as expired; the
// backend rejects them with 401 if they are bad.
func TokenExpired(token string) bool {
	claims := jwt.MapClaims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(time.Now())
}
