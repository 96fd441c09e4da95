package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"house-admin/internal/model"
)

type paymentStore interface {
	List(ctx context.Context) ([]model.Payment, error)
	FindByID(ctx context.Context, id string) (model.Payment, error)
	Create(ctx context.Context, p model.Payment) error
	Delete(ctx context.Context, id string) error
}

type paymentInvoiceStore interface {
	FindByID(ctx context.Context, id string) (model.Invoice, error)
	UpdateStatus(ctx context.Context, id string, status model.InvoiceStatus) error
}

type PaymentService struct {
	payments paymentStore
	invoices paymentInvoiceStore
}

func NewPaymentService(payments paymentStore, invoices paymentInvoiceStore) *PaymentService {
	return &PaymentService{payments: payments, invoices: invoices}
}

func (s *PaymentService) List(ctx context.Context) ([]model.Payment, error) {
	return s.payments.List(ctx)
}

func (s *PaymentService) Get(ctx context.Context, id string) (model.Payment, error) {
	return s.payments.FindByID(ctx, id)
}

// Record stores a payment against an invoice and, when the amount covers the
// invoice total, flips the invoice to paid.
func (s *PaymentService) Record(ctx context.Context, req model.PaymentRequest) (model.Payment, error) {
	if req.InvoiceID == "" {
		return model.Payment{}, fmt.Errorf("%w: invoice_id is required", model.ErrInvalidInput)
	}
	if req.AmountCents <= 0 {
		return model.Payment{}, fmt.Errorf("%w: amount_cents must be positive", model.ErrInvalidInput)
	}

	inv, err := s.invoices.FindByID(ctx, req.InvoiceID)
	if err != nil {
		return model.Payment{}, err
	}

	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}

	payment := model.Payment{
		ID:          uuid.NewString(),
		InvoiceID:   inv.ID,
		AmountCents: req.AmountCents,
		Method:      req.Method,
		PaidAt:      paidAt,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return model.Payment{}, err
	}

	if req.AmountCents >= inv.AmountCents && inv.Status != model.InvoicePaid {
		if err := s.invoices.UpdateStatus(ctx, inv.ID, model.InvoicePaid); err != nil {
			return model.Payment{}, err
		}
	}

	return payment, nil
}

func (s *PaymentService) Delete(ctx context.Context, id string) error {
	return s.payments.Delete(ctx, id)
}
