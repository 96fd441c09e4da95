package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"house-admin/internal/model"
)

const minSigningKeyBytes = 32

type accountFinder interface {
	FindByEmail(ctx context.Context, email string) (model.Account, error)
}

// AuthService is the credential verifier and session token codec. The signing
// key is fixed at construction and shared read-only across all concurrent
// issuances and validations.
type AuthService struct {
	signingKey []byte
	ttl        time.Duration
	accounts   accountFinder
	hasher     PasswordHasher
}

func NewAuthService(signingKey []byte, ttl time.Duration, accounts accountFinder, hasher PasswordHasher) (*AuthService, error) {
	if len(signingKey) < minSigningKeyBytes {
		return nil, fmt.Errorf("signing key must be at least %d bytes, got %d", minSigningKeyBytes, len(signingKey))
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive")
	}

	return &AuthService{
		signingKey: signingKey,
		ttl:        ttl,
		accounts:   accounts,
		hasher:     hasher,
	}, nil
}

// Login verifies an email/password pair and issues a session token. Both an
// unknown email and a wrong password produce the same generic error so the
// response does not reveal whether the account exists.
func (s *AuthService) Login(ctx context.Context, email string, password string) (model.LoginResult, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return model.LoginResult{}, model.ErrInvalidCredentials
		}
		return model.LoginResult{}, fmt.Errorf("login lookup: %w", err)
	}

	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		return model.LoginResult{}, model.ErrInvalidCredentials
	}

	role := model.NormalizeRole(string(account.Role))
	subject := strings.ToLower(strings.TrimSpace(account.Email))

	token, err := s.IssueToken(subject, role)
	if err != nil {
		return model.LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	return model.LoginResult{
		Username:  account.Username,
		Email:     subject,
		Role:      role,
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.ttl.Seconds()),
	}, nil
}

// IssueToken signs a self-contained session token carrying subject, issue
// time, expiry and the role claim.
func (s *AuthService) IssueToken(email string, role model.Role) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  email,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
		"role": string(role),
	})

	return token.SignedString(s.signingKey)
}

// ValidateToken checks signature and expiry and returns the decoded claims.
// Blank input is a precondition failure (ErrTokenMissing), not a security
// event; callers collapse the remaining failures into "not authenticated".
func (s *AuthService) ValidateToken(tokenString string) (*model.AuthClaims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, model.ErrTokenMissing
	}

	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.ErrTokenExpired
		}
		return nil, model.ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, model.ErrTokenInvalid
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrTokenInvalid
	}

	email, _ := claimsMap["sub"].(string)
	if email == "" {
		return nil, model.ErrTokenInvalid
	}

	// A missing role claim defaults to STUDENT at this boundary only.
	rawRole, _ := claimsMap["role"].(string)

	return &model.AuthClaims{
		Email: strings.ToLower(email),
		Role:  model.NormalizeRole(rawRole),
	}, nil
}

// TTL reports the configured session token lifetime.
func (s *AuthService) TTL() time.Duration {
	return s.ttl
}
