package model

import "time"

type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthClaims is the decoded payload of a validated session token.
type AuthClaims struct {
	Email string `json:"sub"`
	Role  Role   `json:"role"`
}

// Principal is the request-scoped identity established by the request
// authenticator. It lives in the request context and is never persisted.
type Principal struct {
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Authority string `json:"authority"`
}

// LoginResult is what a successful credential check hands back to the client.
type LoginResult struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}
