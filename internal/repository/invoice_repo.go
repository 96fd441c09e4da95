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

type InvoiceRepository struct {
	pool *pgxpool.Pool
}

func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

const invoiceColumns = `id, account_id, description, amount_cents, due_date, status, created_at, updated_at`

func (r *InvoiceRepository) scanInvoice(row pgx.Row) (model.Invoice, error) {
	var inv model.Invoice
	err := row.Scan(&inv.ID, &inv.AccountID, &inv.Description, &inv.AmountCents, &inv.DueDate, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt)
	return inv, err
}

func (r *InvoiceRepository) List(ctx context.Context) ([]model.Invoice, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices ORDER BY due_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *InvoiceRepository) ListByAccount(ctx context.Context, accountID string) ([]model.Invoice, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE account_id = $1 ORDER BY due_date DESC`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list invoices by account: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// ListOverdueOpen returns open invoices whose due date has passed; used by the
// reminder scheduler.
func (r *InvoiceRepository) ListOverdueOpen(ctx context.Context, now time.Time) ([]model.Invoice, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE status = $1 AND due_date < $2 ORDER BY due_date`,
		model.InvoiceOpen, now)
	if err != nil {
		return nil, fmt.Errorf("list overdue invoices: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (model.Invoice, error) {
	inv, err := r.scanInvoice(r.pool.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Invoice{}, model.ErrInvoiceNotFound
	}
	if err != nil {
		return model.Invoice{}, fmt.Errorf("find invoice by id: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepository) Create(ctx context.Context, inv model.Invoice) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO invoices (id, account_id, description, amount_cents, due_date, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		inv.ID, inv.AccountID, inv.Description, inv.AmountCents, inv.DueDate, inv.Status, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id string, status model.InvoiceStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE invoices SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrInvoiceNotFound
	}
	return nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrInvoiceNotFound
	}
	return nil
}

func (r *InvoiceRepository) collect(rows pgx.Rows) ([]model.Invoice, error) {
	invoices := make([]model.Invoice, 0)
	for rows.Next() {
		inv, err := r.scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}
