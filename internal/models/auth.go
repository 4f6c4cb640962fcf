package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims represents the JWT payload for the studio administrator.
type JWTClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthToken is returned by a successful login.
type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// LoginRequest carries the administrator credential.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
