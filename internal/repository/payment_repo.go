package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"house-admin/internal/model"
)

type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

func (r *PaymentRepository) List(ctx context.Context) ([]model.Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, invoice_id, amount_cents, method, paid_at, created_at
		 FROM payments ORDER BY paid_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	payments := make([]model.Payment, 0)
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.AmountCents, &p.Method, &p.PaidAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (model.Payment, error) {
	var p model.Payment
	err := r.pool.QueryRow(ctx,
		`SELECT id, invoice_id, amount_cents, method, paid_at, created_at
		 FROM payments WHERE id = $1`, id).
		Scan(&p.ID, &p.InvoiceID, &p.AmountCents, &p.Method, &p.PaidAt, &p.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Payment{}, model.ErrPaymentNotFound
	}
	if err != nil {
		return model.Payment{}, fmt.Errorf("find payment by id: %w", err)
	}
	return p, nil
}

func (r *PaymentRepository) Create(ctx context.Context, p model.Payment) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO payments (id, invoice_id, amount_cents, method, paid_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.InvoiceID, p.AmountCents, p.Method, p.PaidAt, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPaymentNotFound
	}
	return nil
}
