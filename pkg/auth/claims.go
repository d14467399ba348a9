package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenClaims represents the typed JWT issued to clients. Tokens carry
// only the user identifier plus the registered expiry claims; there are no
// scopes and no refresh flow.
type AccessTokenClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
