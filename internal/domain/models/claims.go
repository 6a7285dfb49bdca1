package models

import (
	"github.com/golang-jwt/jwt/v5"
)

const AccessToken = "access"

// SessionClaims are the claims carried by the auth-user cookie token.
type SessionClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"typ"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}
