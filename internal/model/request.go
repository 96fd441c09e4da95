package model

import "time"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type RoomRequest struct {
	Number     string  `json:"number"`
	Floor      int     `json:"floor"`
	SizeSqm    float64 `json:"size_sqm"`
	OccupantID *string `json:"occupant_id"`
}

type InvoiceRequest struct {
	AccountID   string    `json:"account_id"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amount_cents"`
	DueDate     time.Time `json:"due_date"`
}

type PaymentRequest struct {
	InvoiceID   string    `json:"invoice_id"`
	AmountCents int64     `json:"amount_cents"`
	Method      string    `json:"method"`
	PaidAt      time.Time `json:"paid_at"`
}

type DocumentRequest struct {
	Title       string `json:"title"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

type CleaningTaskRequest struct {
	Description string    `json:"description"`
	Area        string    `json:"area"`
	AssigneeID  *string   `json:"assignee_id"`
	DueDate     time.Time `json:"due_date"`
}
