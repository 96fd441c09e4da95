package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"house-admin/internal/model"
)

type invoiceStore interface {
	List(ctx context.Context) ([]model.Invoice, error)
	ListByAccount(ctx context.Context, accountID string) ([]model.Invoice, error)
	ListOverdueOpen(ctx context.Context, now time.Time) ([]model.Invoice, error)
	FindByID(ctx context.Context, id string) (model.Invoice, error)
	Create(ctx context.Context, inv model.Invoice) error
	UpdateStatus(ctx context.Context, id string, status model.InvoiceStatus) error
	Delete(ctx context.Context, id string) error
}

type invoiceAccountStore interface {
	FindByEmail(ctx context.Context, email string) (model.Account, error)
}

type InvoiceService struct {
	invoices invoiceStore
	accounts invoiceAccountStore
}

func NewInvoiceService(invoices invoiceStore, accounts invoiceAccountStore) *InvoiceService {
	return &InvoiceService{invoices: invoices, accounts: accounts}
}

func (s *InvoiceService) List(ctx context.Context) ([]model.Invoice, error) {
	return s.invoices.List(ctx)
}

// ListForEmail returns the invoices owned by the account behind the given
// email; used for the student-facing "my invoices" view.
func (s *InvoiceService) ListForEmail(ctx context.Context, email string) ([]model.Invoice, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.invoices.ListByAccount(ctx, account.ID)
}

func (s *InvoiceService) Get(ctx context.Context, id string) (model.Invoice, error) {
	return s.invoices.FindByID(ctx, id)
}

func (s *InvoiceService) Create(ctx context.Context, req model.InvoiceRequest) (model.Invoice, error) {
	if req.AccountID == "" {
		return model.Invoice{}, fmt.Errorf("%w: account_id is required", model.ErrInvalidInput)
	}
	if req.AmountCents <= 0 {
		return model.Invoice{}, fmt.Errorf("%w: amount_cents must be positive", model.ErrInvalidInput)
	}
	if req.DueDate.IsZero() {
		return model.Invoice{}, fmt.Errorf("%w: due_date is required", model.ErrInvalidInput)
	}

	now := time.Now().UTC()
	inv := model.Invoice{
		ID:          uuid.NewString(),
		AccountID:   req.AccountID,
		Description: req.Description,
		AmountCents: req.AmountCents,
		DueDate:     req.DueDate,
		Status:      model.InvoiceOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.invoices.Create(ctx, inv); err != nil {
		return model.Invoice{}, err
	}
	return inv, nil
}

func (s *InvoiceService) MarkPaid(ctx context.Context, id string) error {
	return s.invoices.UpdateStatus(ctx, id, model.InvoicePaid)
}

func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	return s.invoices.Delete(ctx, id)
}
