package model

import "time"

type Room struct {
	ID         string    `json:"id"`
	Number     string    `json:"number"`
	Floor      int       `json:"floor"`
	SizeSqm    float64   `json:"size_sqm"`
	OccupantID *string   `json:"occupant_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type InvoiceStatus string

const (
	InvoiceOpen    InvoiceStatus = "open"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

type Invoice struct {
	ID          string        `json:"id"`
	AccountID   string        `json:"account_id"`
	Description string        `json:"description"`
	AmountCents int64         `json:"amount_cents"`
	DueDate     time.Time     `json:"due_date"`
	Status      InvoiceStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type Payment struct {
	ID          string    `json:"id"`
	InvoiceID   string    `json:"invoice_id"`
	AmountCents int64     `json:"amount_cents"`
	Method      string    `json:"method"`
	PaidAt      time.Time `json:"paid_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// Document holds file metadata only; the upload blob itself is handled by an
// external storage collaborator.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CleaningTask struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Area        string     `json:"area"`
	AssigneeID  *string    `json:"assignee_id,omitempty"`
	DueDate     time.Time  `json:"due_date"`
	DoneAt      *time.Time `json:"done_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
