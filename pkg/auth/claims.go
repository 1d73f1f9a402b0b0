package auth

import (
	"github.com/dukapos/pos-terminal/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT.
// The terminal only mints tokens in tests; production tokens come from
// the backend's login endpoint and share the same secret.
type AccessTokenPayload struct {
	UserID   int64
	Username string
	Role     enums.Role
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to the terminal UI.
type AccessTokenClaims struct {
	UserID   int64      `json:"user_id"`
	Username string     `json:"username"`
	Role     enums.Role `json:"role"`
	jwt.RegisteredClaims
}
