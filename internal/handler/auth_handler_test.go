package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house-admin/internal/model"
	"house-admin/internal/service"
)

type memAccounts struct {
	byEmail map[string]model.Account
}

func (m *memAccounts) FindByEmail(ctx context.Context, email string) (model.Account, error) {
	a, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return model.Account{}, model.ErrAccountNotFound
	}
	return a, nil
}

func (m *memAccounts) UpdatePassword(ctx context.Context, accountID string, passwordHash string) error {
	for email, a := range m.byEmail {
		if a.ID == accountID {
			a.PasswordHash = passwordHash
			m.byEmail[email] = a
			return nil
		}
	}
	return model.ErrAccountNotFound
}

type memTokens struct {
	byToken map[string]model.PasswordResetToken
}

func (m *memTokens) Save(ctx context.Context, t model.PasswordResetToken) error {
	m.byToken[t.Token] = t
	return nil
}

func (m *memTokens) FindByToken(ctx context.Context, token string) (model.PasswordResetToken, error) {
	t, ok := m.byToken[token]
	if !ok {
		return model.PasswordResetToken{}, model.ErrResetTokenNotFound
	}
	return t, nil
}

func (m *memTokens) ExistsByToken(ctx context.Context, token string) (bool, error) {
	_, ok := m.byToken[token]
	return ok, nil
}

func (m *memTokens) MarkUsed(ctx context.Context, token string, usedAt time.Time) error {
	t, ok := m.byToken[token]
	if !ok {
		return model.ErrResetTokenNotFound
	}
	if t.UsedAt != nil {
		return model.ErrResetTokenUsed
	}
	t.UsedAt = &usedAt
	m.byToken[token] = t
	return nil
}

type capturingNotifier struct {
	lastEmail string
	lastToken string
}

func (n *capturingNotifier) SendPasswordReset(ctx context.Context, email string, token string) error {
	n.lastEmail = email
	n.lastToken = token
	return nil
}

// plainHasher keeps the tests fast; the production hasher is bcrypt.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (plainHasher) Compare(hash string, plain string) error {
	if hash != "hashed:"+plain {
		return fmt.Errorf("mismatch")
	}
	return nil
}

func newAuthFixture(t *testing.T) (*AuthHandler, *memAccounts, *capturingNotifier) {
	t.Helper()

	accounts := &memAccounts{byEmail: map[string]model.Account{
		"resident@house.test": {
			ID:           "acc-1",
			Email:        "resident@house.test",
			Username:     "resident",
			PasswordHash: "hashed:OldPass123",
			Role:         model.RoleStudent,
		},
	}}
	tokens := &memTokens{byToken: map[string]model.PasswordResetToken{}}
	mail := &capturingNotifier{}
	hasher := plainHasher{}

	auth, err := service.NewAuthService([]byte("0123456789abcdef0123456789abcdef"), time.Hour, accounts, hasher)
	require.NoError(t, err)
	reset := service.NewPasswordResetService(accounts, tokens, mail, hasher)

	return NewAuthHandler(auth, reset), accounts, mail
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) model.APIResponse {
	t.Helper()
	var resp model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestLoginEndpoint(t *testing.T) {
	h, _, _ := newAuthFixture(t)

	t.Run("valid credentials return a token", func(t *testing.T) {
		rec := postJSON(t, h.Login, `{"email":"resident@house.test","password":"OldPass123"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)

		data := resp.Data.(map[string]any)
		assert.Equal(t, "resident@house.test", data["email"])
		assert.Equal(t, "STUDENT", data["role"])
		assert.Equal(t, "Bearer", data["token_type"])
		assert.NotEmpty(t, data["token"])
	})

	t.Run("wrong password and unknown email look identical", func(t *testing.T) {
		wrongPass := postJSON(t, h.Login, `{"email":"resident@house.test","password":"nope"}`)
		unknown := postJSON(t, h.Login, `{"email":"ghost@house.test","password":"nope"}`)

		require.Equal(t, http.StatusUnauthorized, wrongPass.Code)
		require.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.JSONEq(t, wrongPass.Body.String(), unknown.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := postJSON(t, h.Login, `{not json`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPasswordResetEndpoints(t *testing.T) {
	h, accounts, mail := newAuthFixture(t)

	t.Run("full recovery flow", func(t *testing.T) {
		rec := postJSON(t, h.ForgotPassword, `{"email":"resident@house.test"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		// The raw token leaves only through the notifier, never the response.
		require.NotEmpty(t, mail.lastToken)
		assert.NotContains(t, rec.Body.String(), mail.lastToken)
		assert.Equal(t, "resident@house.test", mail.lastEmail)

		body := fmt.Sprintf(`{"token":%q,"new_password":"NewPass456"}`, mail.lastToken)
		rec = postJSON(t, h.ResetPassword, body)
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Equal(t, "hashed:NewPass456", accounts.byEmail["resident@house.test"].PasswordHash)

		rec = postJSON(t, h.Login, `{"email":"resident@house.test","password":"NewPass456"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		rec = postJSON(t, h.Login, `{"email":"resident@house.test","password":"OldPass123"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		// Replaying the same token must fail now that it is spent.
		rec = postJSON(t, h.ResetPassword, body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, "RESET_TOKEN_USED", resp.Error.Code)
	})

	t.Run("unknown email is reported", func(t *testing.T) {
		rec := postJSON(t, h.ForgotPassword, `{"email":"ghost@house.test"}`)
		require.Equal(t, http.StatusNotFound, rec.Code)

		resp := decodeResponse(t, rec)
		assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		rec := postJSON(t, h.ResetPassword, `{"token":"deadbeef","new_password":"NewPass456"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		resp := decodeResponse(t, rec)
		assert.Equal(t, "RESET_TOKEN_NOT_FOUND", resp.Error.Code)
	})

	t.Run("blank token is rejected before lookup", func(t *testing.T) {
		rec := postJSON(t, h.ResetPassword, `{"token":"  ","new_password":"NewPass456"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
