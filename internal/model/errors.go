package model

import "errors"

var (
	// Credential and session token errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenMissing       = errors.New("token missing")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenExpired       = errors.New("token expired")

	// Account errors
	ErrAccountNotFound = errors.New("account not found")

	// Password reset errors
	ErrResetTokenNotFound = errors.New("reset token not found")
	ErrResetTokenExpired  = errors.New("reset token expired")
	ErrResetTokenUsed     = errors.New("reset token already used")

	// Permission/Access errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// House administration errors
	ErrRoomNotFound         = errors.New("room not found")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrCleaningTaskNotFound = errors.New("cleaning task not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
