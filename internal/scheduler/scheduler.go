package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"house-admin/internal/model"
	"house-admin/internal/notifier"
)

type invoiceStore interface {
	ListOverdueOpen(ctx context.Context, now time.Time) ([]model.Invoice, error)
	UpdateStatus(ctx context.Context, id string, status model.InvoiceStatus) error
}

type accountStore interface {
	FindByID(ctx context.Context, id string) (model.Account, error)
}

// Scheduler runs the recurring dunning sweep: open invoices past their due
// date are flipped to overdue and handed to the notifier. Failures are logged
// and retried on the next tick, never inline.
type Scheduler struct {
	cron     *cron.Cron
	invoices invoiceStore
	accounts accountStore
	notifier notifier.Notifier
}

func New(invoices invoiceStore, accounts accountStore, n notifier.Notifier) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		invoices: invoices,
		accounts: accounts,
		notifier: n,
	}
}

// Start registers the sweep under the given cron spec and begins scheduling.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		s.RunSweep(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	slog.Info("reminder scheduler started", "cron", spec)
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RunSweep executes one dunning pass. Exposed so tests and an admin endpoint
// can trigger it without waiting for the next tick.
func (s *Scheduler) RunSweep(ctx context.Context) {
	invoices, err := s.invoices.ListOverdueOpen(ctx, time.Now().UTC())
	if err != nil {
		slog.Error("overdue invoice sweep failed", "error", err)
		return
	}

	for _, inv := range invoices {
		if err := s.invoices.UpdateStatus(ctx, inv.ID, model.InvoiceOverdue); err != nil {
			slog.Error("could not mark invoice overdue", "invoice_id", inv.ID, "error", err)
			continue
		}

		account, err := s.accounts.FindByID(ctx, inv.AccountID)
		if err != nil {
			slog.Warn("overdue invoice has no resolvable account", "invoice_id", inv.ID, "account_id", inv.AccountID)
			continue
		}

		if err := s.notifier.SendPaymentReminder(ctx, account.Email, inv); err != nil {
			slog.Warn("payment reminder failed", "invoice_id", inv.ID, "error", err)
		}
	}

	if len(invoices) > 0 {
		slog.Info("dunning sweep complete", "marked_overdue", len(invoices))
	}
}
