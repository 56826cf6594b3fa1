package repository

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/go-auth-portal/internal/domain/entity"
)

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrDuplicateAccount = errors.New("account already exists")
)

// AccountRepository is the credential store.
// Implementations must enforce email uniqueness and make each method atomic
// with respect to the single account it touches.
type AccountRepository interface {
	// Create inserts a new account and fills ID and timestamps.
	// Returns ErrDuplicateAccount when the email is taken.
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)

	// ConsumeVerificationCode marks the account holding an unexpired matching
	// code as verified and clears the code in the same write.
	ConsumeVerificationCode(ctx context.Context, code string, now time.Time) (*entity.Account, error)
	// SetResetToken stores a fresh reset token, replacing any previous one.
	SetResetToken(ctx context.Context, id string, token entity.OneTimeCode) error
	// ConsumeResetToken replaces the password hash of the account holding an
	// unexpired matching token and clears the token in the same write.
	ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*entity.Account, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}
