package entity

import (
	"crypto/subtle"
	"time"
)

// OneTimeCode is a single-use secret paired with its expiry.
// A nil *OneTimeCode means the code is absent.
type OneTimeCode struct {
	Value     string
	ExpiresAt time.Time
}

// Matches reports whether v equals the code and the code has not expired at now.
// An expired code never matches, even if it is still stored.
func (c *OneTimeCode) Matches(v string, now time.Time) bool {
	if c == nil || v == "" {
		return false
	}
	if !now.Before(c.ExpiresAt) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.Value), []byte(v)) == 1
}

// Account is the aggregate root for the credential lifecycle.
// PasswordHash holds a bcrypt digest.
type Account struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	IsVerified   bool
	Verification *OneTimeCode
	Reset        *OneTimeCode
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
