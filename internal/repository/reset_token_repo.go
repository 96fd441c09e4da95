package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"house-admin/internal/model"
)

type ResetTokenRepository struct {
	pool *pgxpool.Pool
}

func NewResetTokenRepository(pool *pgxpool.Pool) *ResetTokenRepository {
	return &ResetTokenRepository{pool: pool}
}

func (r *ResetTokenRepository) Save(ctx context.Context, t model.PasswordResetToken) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO password_reset_tokens (token, account_id, expires_at, used_at, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		t.Token, t.AccountID, t.ExpiresAt, t.UsedAt, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}
	return nil
}

func (r *ResetTokenRepository) FindByToken(ctx context.Context, token string) (model.PasswordResetToken, error) {
	var t model.PasswordResetToken
	err := r.pool.QueryRow(ctx,
		`SELECT token, account_id, expires_at, used_at, created_at
		 FROM password_reset_tokens WHERE token = $1`, token).
		Scan(&t.Token, &t.AccountID, &t.ExpiresAt, &t.UsedAt, &t.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.PasswordResetToken{}, model.ErrResetTokenNotFound
	}
	if err != nil {
		return model.PasswordResetToken{}, fmt.Errorf("find reset token: %w", err)
	}
	return t, nil
}

func (r *ResetTokenRepository) ExistsByToken(ctx context.Context, token string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM password_reset_tokens WHERE token = $1)`, token).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check reset token exists: %w", err)
	}
	return exists, nil
}

// MarkUsed is the terminal transition for a reset token. The guard on used_at
// keeps the transition single-shot even under concurrent redemption attempts.
func (r *ResetTokenRepository) MarkUsed(ctx context.Context, token string, usedAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE password_reset_tokens SET used_at = $2 WHERE token = $1 AND used_at IS NULL`,
		token, usedAt)
	if err != nil {
		return fmt.Errorf("mark reset token used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrResetTokenUsed
	}
	return nil
}

func (r *ResetTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM password_reset_tokens WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired reset tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
