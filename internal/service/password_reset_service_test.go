package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house-admin/internal/model"
)

type fakeResetTokenStore struct {
	tokens    map[string]model.PasswordResetToken
	preloaded int // number of Exists calls reporting a collision
}

func newFakeResetTokenStore() *fakeResetTokenStore {
	return &fakeResetTokenStore{tokens: map[string]model.PasswordResetToken{}}
}

func (s *fakeResetTokenStore) Save(_ context.Context, t model.PasswordResetToken) error {
	s.tokens[t.Token] = t
	return nil
}

func (s *fakeResetTokenStore) FindByToken(_ context.Context, token string) (model.PasswordResetToken, error) {
	t, ok := s.tokens[token]
	if !ok {
		return model.PasswordResetToken{}, model.ErrResetTokenNotFound
	}
	return t, nil
}

func (s *fakeResetTokenStore) ExistsByToken(_ context.Context, token string) (bool, error) {
	if s.preloaded > 0 {
		s.preloaded--
		return true, nil
	}
	_, ok := s.tokens[token]
	return ok, nil
}

func (s *fakeResetTokenStore) MarkUsed(_ context.Context, token string, usedAt time.Time) error {
	t, ok := s.tokens[token]
	if !ok {
		return model.ErrResetTokenNotFound
	}
	if t.UsedAt != nil {
		return model.ErrResetTokenUsed
	}
	t.UsedAt = &usedAt
	s.tokens[token] = t
	return nil
}

type fakeNotifier struct {
	resetEmails []string
	tokens      []string
}

func (n *fakeNotifier) SendPasswordReset(_ context.Context, email string, token string) error {
	n.resetEmails = append(n.resetEmails, email)
	n.tokens = append(n.tokens, token)
	return nil
}

func newResetFixture() (*PasswordResetService, *fakeAccountStore, *fakeResetTokenStore, *fakeNotifier) {
	accounts := newFakeAccountStore(model.Account{
		ID:           "acc-1",
		Email:        "a@x.com",
		Username:     "aya",
		PasswordHash: "old-hash",
		Role:         model.RoleStudent,
	})
	tokens := newFakeResetTokenStore()
	notifier := &fakeNotifier{}
	svc := NewPasswordResetService(accounts, tokens, notifier, &BcryptHasher{cost: 4})
	return svc, accounts, tokens, notifier
}

func TestCreateResetToken(t *testing.T) {
	t.Parallel()

	t.Run("issues a persisted token with a 30 minute window", func(t *testing.T) {
		svc, _, tokens, notifier := newResetFixture()

		token, err := svc.CreateResetToken(context.Background(), " A@X.com ")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		stored, ok := tokens.tokens[token]
		require.True(t, ok)
		assert.Equal(t, "acc-1", stored.AccountID)
		assert.Nil(t, stored.UsedAt)
		assert.WithinDuration(t, time.Now().UTC().Add(30*time.Minute), stored.ExpiresAt, 5*time.Second)

		require.Equal(t, []string{"a@x.com"}, notifier.resetEmails)
		require.Equal(t, []string{token}, notifier.tokens)
	})

	t.Run("blank email is invalid input", func(t *testing.T) {
		svc, _, _, _ := newResetFixture()
		_, err := svc.CreateResetToken(context.Background(), "   ")
		require.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("unknown email is reported as not found", func(t *testing.T) {
		svc, _, _, _ := newResetFixture()
		_, err := svc.CreateResetToken(context.Background(), "nobody@x.com")
		require.ErrorIs(t, err, model.ErrAccountNotFound)
	})

	t.Run("regenerates on collision", func(t *testing.T) {
		svc, _, tokens, _ := newResetFixture()
		tokens.preloaded = 2

		token, err := svc.CreateResetToken(context.Background(), "a@x.com")
		require.NoError(t, err)
		require.NotEmpty(t, token)
	})

	t.Run("gives up after bounded collision retries", func(t *testing.T) {
		svc, _, tokens, _ := newResetFixture()
		tokens.preloaded = maxTokenAttempts

		_, err := svc.CreateResetToken(context.Background(), "a@x.com")
		require.Error(t, err)
	})

	t.Run("two requests leave two independently active tokens", func(t *testing.T) {
		svc, _, tokens, _ := newResetFixture()

		first, err := svc.CreateResetToken(context.Background(), "a@x.com")
		require.NoError(t, err)
		second, err := svc.CreateResetToken(context.Background(), "a@x.com")
		require.NoError(t, err)

		require.NotEqual(t, first, second)
		assert.Len(t, tokens.tokens, 2)

		// The older token stays redeemable after the newer one was issued.
		require.NoError(t, svc.ResetPassword(context.Background(), first, "NewPass123"))
	})
}

func TestResetPassword(t *testing.T) {
	t.Parallel()

	t.Run("redeems once and updates the account hash", func(t *testing.T) {
		svc, accounts, tokens, _ := newResetFixture()

		token, err := svc.CreateResetToken(context.Background(), "a@x.com")
		require.NoError(t, err)

		require.NoError(t, svc.ResetPassword(context.Background(), token, "NewPass123"))

		hash, ok := accounts.updated["acc-1"]
		require.True(t, ok)
		require.NoError(t, (&BcryptHasher{cost: 4}).Compare(hash, "NewPass123"))

		stored := tokens.tokens[token]
		require.NotNil(t, stored.UsedAt)

		// Second redemption of the same token is rejected.
		err = svc.ResetPassword(context.Background(), token, "AnotherPass1")
		require.ErrorIs(t, err, model.ErrResetTokenUsed)
	})

	t.Run("short password is invalid input", func(t *testing.T) {
		svc, _, _, _ := newResetFixture()
		err := svc.ResetPassword(context.Background(), "whatever", "short")
		require.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("unknown token is not found", func(t *testing.T) {
		svc, _, _, _ := newResetFixture()
		err := svc.ResetPassword(context.Background(), "missing", "NewPass123")
		require.ErrorIs(t, err, model.ErrResetTokenNotFound)
	})

	t.Run("expired token is rejected even when unused", func(t *testing.T) {
		svc, _, tokens, _ := newResetFixture()

		token, err := svc.CreateResetToken(context.Background(), "a@x.com")
		require.NoError(t, err)

		stored := tokens.tokens[token]
		stored.ExpiresAt = time.Now().UTC().Add(-time.Minute)
		tokens.tokens[token] = stored

		err = svc.ResetPassword(context.Background(), token, "NewPass123")
		require.ErrorIs(t, err, model.ErrResetTokenExpired)
		require.Nil(t, tokens.tokens[token].UsedAt)
	})
}
