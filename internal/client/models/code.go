package models

import "time"

// VerificationCode is the one-time code issued for an email. A new send
// replaces the previous record; a successful confirmation deletes it.
type VerificationCode struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the code is past its lifetime at now. A zero
// ExpiresAt never expires.
func (c *VerificationCode) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}
