package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the typed JWT carried by the session cookie. It holds a
// reference to the server-side credential store, never a bearer token.
type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}
