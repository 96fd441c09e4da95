package model

import "time"

// PasswordResetToken is the persisted single-use recovery credential.
// Lifecycle: Active -> Expired (time passes) or Active -> Used (UsedAt set);
// neither transition is reversible.
type PasswordResetToken struct {
	Token     string     `json:"-"`
	AccountID string     `json:"account_id"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (t PasswordResetToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

func (t PasswordResetToken) Used() bool {
	return t.UsedAt != nil
}
