package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"house-admin/internal/model"
)

const (
	// resetTokenTTL is the fixed validity window for recovery tokens.
	resetTokenTTL = 30 * time.Minute

	minPasswordLength = 8
	resetTokenBytes   = 32
	maxTokenAttempts  = 5
)

type resetAccountStore interface {
	FindByEmail(ctx context.Context, email string) (model.Account, error)
	UpdatePassword(ctx context.Context, accountID string, passwordHash string) error
}

type resetTokenStore interface {
	Save(ctx context.Context, t model.PasswordResetToken) error
	FindByToken(ctx context.Context, token string) (model.PasswordResetToken, error)
	ExistsByToken(ctx context.Context, token string) (bool, error)
	MarkUsed(ctx context.Context, token string, usedAt time.Time) error
}

type resetNotifier interface {
	SendPasswordReset(ctx context.Context, email string, token string) error
}

// PasswordResetService manages the opaque, time-limited, single-use recovery
// token lifecycle: Active -> Expired (time) or Active -> Used (terminal).
type PasswordResetService struct {
	accounts resetAccountStore
	tokens   resetTokenStore
	notifier resetNotifier
	hasher   PasswordHasher
}

func NewPasswordResetService(accounts resetAccountStore, tokens resetTokenStore, notifier resetNotifier, hasher PasswordHasher) *PasswordResetService {
	return &PasswordResetService{
		accounts: accounts,
		tokens:   tokens,
		notifier: notifier,
		hasher:   hasher,
	}
}

// CreateResetToken issues a fresh recovery token for the given email and
// hands it to the notifier for out-of-band delivery. The unknown-email error
// deliberately reveals account existence; the admin UI shows it to the
// requester directly.
func (s *PasswordResetService) CreateResetToken(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", model.ErrInvalidInput)
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return "", model.ErrAccountNotFound
		}
		return "", fmt.Errorf("reset token lookup: %w", err)
	}

	token, err := s.generateUniqueToken(ctx)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	record := model.PasswordResetToken{
		Token:     token,
		AccountID: account.ID,
		ExpiresAt: now.Add(resetTokenTTL),
		CreatedAt: now,
	}

	if err := s.tokens.Save(ctx, record); err != nil {
		return "", fmt.Errorf("persist reset token: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.SendPasswordReset(ctx, email, token); err != nil {
			slog.Warn("password reset notification failed", "email", email, "error", err)
		}
	}

	return token, nil
}

// ResetPassword redeems a recovery token: the new password is hashed onto the
// owning account, then the token is marked used. The two writes are separate
// store calls, not one transaction.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" || len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", model.ErrInvalidInput, minPasswordLength)
	}

	record, err := s.tokens.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrResetTokenNotFound) {
			return model.ErrResetTokenNotFound
		}
		return fmt.Errorf("reset token fetch: %w", err)
	}

	if record.Expired(time.Now().UTC()) {
		return model.ErrResetTokenExpired
	}
	if record.Used() {
		return model.ErrResetTokenUsed
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}

	if err := s.accounts.UpdatePassword(ctx, record.AccountID, hash); err != nil {
		return fmt.Errorf("update account password: %w", err)
	}

	if err := s.tokens.MarkUsed(ctx, record.Token, time.Now().UTC()); err != nil {
		return fmt.Errorf("mark reset token used: %w", err)
	}

	return nil
}

// generateUniqueToken draws random tokens until one does not collide with a
// stored row, bounded so a broken store cannot spin forever.
func (s *PasswordResetService) generateUniqueToken(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		buf := make([]byte, resetTokenBytes)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generate reset token: %w", err)
		}
		token := hex.EncodeToString(buf)

		exists, err := s.tokens.ExistsByToken(ctx, token)
		if err != nil {
			return "", fmt.Errorf("check reset token collision: %w", err)
		}
		if !exists {
			return token, nil
		}
	}

	return "", fmt.Errorf("could not generate a unique reset token after %d attempts", maxTokenAttempts)
}
