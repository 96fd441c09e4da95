package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"house-admin/internal/model"
)

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (model.Account, error) {
	var a model.Account
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, username, password_hash, role, created_at, updated_at
		 FROM accounts WHERE id = $1`, id).
		Scan(&a.ID, &a.Email, &a.Username, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Account{}, model.ErrAccountNotFound
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("find account by id: %w", err)
	}
	return a, nil
}

// FindByEmail resolves an account by email, case-insensitively.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (model.Account, error) {
	var a model.Account
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, username, password_hash, role, created_at, updated_at
		 FROM accounts WHERE lower(email) = lower($1)`, strings.TrimSpace(email)).
		Scan(&a.ID, &a.Email, &a.Username, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Account{}, model.ErrAccountNotFound
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("find account by email: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) Create(ctx context.Context, a model.Account) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO accounts (id, email, username, password_hash, role, created_at, updated_at)
		 VALUES ($1, lower($2), $3, $4, $5, $6, $7)`,
		a.ID, a.Email, a.Username, a.PasswordHash, a.Role, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, accountID string, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE accounts SET password_hash = $2, updated_at = $3 WHERE id = $1`,
		accountID, passwordHash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) List(ctx context.Context) ([]model.Account, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, email, username, password_hash, role, created_at, updated_at
		 FROM accounts ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]model.Account, 0)
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Email, &a.Username, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAccountNotFound
	}
	return nil
}
