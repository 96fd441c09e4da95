package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house-admin/internal/model"
)

var testSigningKey = []byte(strings.Repeat("k", 32))

type fakeAccountStore struct {
	byEmail map[string]model.Account
	updated map[string]string
}

func newFakeAccountStore(accounts ...model.Account) *fakeAccountStore {
	s := &fakeAccountStore{byEmail: map[string]model.Account{}, updated: map[string]string{}}
	for _, a := range accounts {
		s.byEmail[strings.ToLower(a.Email)] = a
	}
	return s
}

func (s *fakeAccountStore) FindByEmail(_ context.Context, email string) (model.Account, error) {
	a, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return model.Account{}, model.ErrAccountNotFound
	}
	return a, nil
}

func (s *fakeAccountStore) UpdatePassword(_ context.Context, accountID string, passwordHash string) error {
	s.updated[accountID] = passwordHash
	for k, a := range s.byEmail {
		if a.ID == accountID {
			a.PasswordHash = passwordHash
			s.byEmail[k] = a
		}
	}
	return nil
}

func newTestAuthService(t *testing.T, accounts accountFinder) *AuthService {
	t.Helper()
	svc, err := NewAuthService(testSigningKey, time.Hour, accounts, &BcryptHasher{cost: 4})
	require.NoError(t, err)
	return svc
}

func TestNewAuthService(t *testing.T) {
	t.Parallel()

	t.Run("rejects short signing key", func(t *testing.T) {
		_, err := NewAuthService([]byte("short"), time.Hour, newFakeAccountStore(), NewBcryptHasher())
		require.Error(t, err)
	})

	t.Run("rejects non positive ttl", func(t *testing.T) {
		_, err := NewAuthService(testSigningKey, 0, newFakeAccountStore(), NewBcryptHasher())
		require.Error(t, err)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t, newFakeAccountStore())

	for _, role := range []model.Role{model.RoleAdmin, model.RoleStudent, model.RoleCleaner} {
		token, err := svc.IssueToken("frodo@x.com", role)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "frodo@x.com", claims.Email)
		assert.Equal(t, role, claims.Role)
	}
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t, newFakeAccountStore())

	t.Run("blank token is a precondition failure", func(t *testing.T) {
		_, err := svc.ValidateToken("")
		require.ErrorIs(t, err, model.ErrTokenMissing)

		_, err = svc.ValidateToken("   ")
		require.ErrorIs(t, err, model.ErrTokenMissing)
	})

	t.Run("expired token fails with expiry error", func(t *testing.T) {
		expired := &AuthService{signingKey: testSigningKey, ttl: -time.Hour}
		token, err := expired.IssueToken("frodo@x.com", model.RoleAdmin)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.ErrorIs(t, err, model.ErrTokenExpired)
	})

	t.Run("tampered payload fails", func(t *testing.T) {
		token, err := svc.IssueToken("frodo@x.com", model.RoleAdmin)
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)

		_, err = svc.ValidateToken(parts[0] + "." + flipByte(parts[1]) + "." + parts[2])
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("tampered signature fails", func(t *testing.T) {
		token, err := svc.IssueToken("frodo@x.com", model.RoleAdmin)
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)

		_, err = svc.ValidateToken(parts[0] + "." + parts[1] + "." + flipByte(parts[2]))
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("token signed with a different key fails", func(t *testing.T) {
		other := &AuthService{signingKey: []byte(strings.Repeat("x", 32)), ttl: time.Hour}
		token, err := other.IssueToken("frodo@x.com", model.RoleAdmin)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("missing role claim defaults to student", func(t *testing.T) {
		// Hand-issued token without a role claim.
		bare := &AuthService{signingKey: testSigningKey, ttl: time.Hour}
		token, err := bare.IssueToken("frodo@x.com", "")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, model.RoleStudent, claims.Role)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	hasher := &BcryptHasher{cost: 4}
	hash, err := hasher.Hash("Admin123!")
	require.NoError(t, err)

	store := newFakeAccountStore(model.Account{
		ID:           "acc-1",
		Email:        "Admin@X.com",
		Username:     "admin",
		PasswordHash: hash,
		Role:         "admin",
	})

	svc, err := NewAuthService(testSigningKey, time.Hour, store, hasher)
	require.NoError(t, err)

	t.Run("valid credentials return token and normalized identity", func(t *testing.T) {
		result, err := svc.Login(context.Background(), "admin@x.com", "Admin123!")
		require.NoError(t, err)

		assert.Equal(t, "admin", result.Username)
		assert.Equal(t, "admin@x.com", result.Email)
		assert.Equal(t, model.RoleAdmin, result.Role)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, int64(3600), result.ExpiresIn)

		claims, err := svc.ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, "admin@x.com", claims.Email)
		assert.Equal(t, model.RoleAdmin, claims.Role)
	})

	t.Run("wrong password fails with the generic error", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "admin@x.com", "wrong")
		require.ErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("unknown email fails with the same generic error", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@x.com", "Admin123!")
		require.ErrorIs(t, err, model.ErrInvalidCredentials)
	})
}

// flipByte changes one character so the base64 segment decodes differently.
func flipByte(segment string) string {
	b := []byte(segment)
	i := len(b) / 2
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	return string(b)
}
