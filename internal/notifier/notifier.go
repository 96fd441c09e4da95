package notifier

import (
	"context"
	"log/slog"

	"house-admin/internal/model"
)

// Notifier hands outbound messages to whatever delivery channel is wired in.
// Message content and actual delivery are outside this service; implementations
// receive the raw material (recipient, token, invoice) and nothing more.
type Notifier interface {
	SendPasswordReset(ctx context.Context, email string, token string) error
	SendPaymentReminder(ctx context.Context, email string, invoice model.Invoice) error
}

// LogNotifier writes notifications to the structured log. It stands in for a
// real mail channel in development and in deployments where delivery is
// handled by an external process tailing the log.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) SendPasswordReset(_ context.Context, email string, token string) error {
	slog.Info("password reset requested",
		"recipient", email,
		"reset_link", "/reset-password/"+token,
	)
	return nil
}

func (n *LogNotifier) SendPaymentReminder(_ context.Context, email string, invoice model.Invoice) error {
	slog.Info("payment reminder",
		"recipient", email,
		"invoice_id", invoice.ID,
		"amount_cents", invoice.AmountCents,
		"due_date", invoice.DueDate,
	)
	return nil
}
