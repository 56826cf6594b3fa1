package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-auth-portal/internal/domain/entity"
	"github.com/oksasatya/go-auth-portal/internal/domain/repository"
)

const accountColumns = `id, email, name, password_hash, is_verified,
	verification_code, verification_expires_at, reset_token, reset_expires_at,
	last_login_at, created_at, updated_at`

type AccountRepository struct {
	db DB
}

func NewAccountRepository(db DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	code, codeExp := splitCode(a.Verification)
	row := r.db.QueryRow(ctx, `
		INSERT INTO accounts (email, name, password_hash, is_verified, verification_code, verification_expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, a.Email, a.Name, a.PasswordHash, a.IsVerified, code, codeExp)

	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateAccount
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
}

func (r *AccountRepository) ConsumeVerificationCode(ctx context.Context, code string, now time.Time) (*entity.Account, error) {
	return r.getOne(ctx, `
		UPDATE accounts
		SET is_verified = TRUE, verification_code = NULL, verification_expires_at = NULL, updated_at = $2
		WHERE id = (
			SELECT id FROM accounts
			WHERE verification_code = $1 AND verification_expires_at > $2
			ORDER BY verification_expires_at DESC
			LIMIT 1
			FOR UPDATE
		) AND verification_code = $1
		RETURNING `+accountColumns, code, now)
}

func (r *AccountRepository) SetResetToken(ctx context.Context, id string, token entity.OneTimeCode) error {
	res, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET reset_token = $1, reset_expires_at = $2, updated_at = now()
		WHERE id = $3
	`, token.Value, token.ExpiresAt, id)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*entity.Account, error) {
	return r.getOne(ctx, `
		UPDATE accounts
		SET password_hash = $2, reset_token = NULL, reset_expires_at = NULL, updated_at = $3
		WHERE reset_token = $1 AND reset_expires_at > $3
		RETURNING `+accountColumns, token, passwordHash, now)
}

func (r *AccountRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.Exec(ctx, `
		UPDATE accounts SET last_login_at = $1, updated_at = $1 WHERE id = $2
	`, at, id)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) getOne(ctx context.Context, sql string, args ...any) (*entity.Account, error) {
	a, err := scanAccount(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrAccountNotFound
		}
		return nil, fmt.Errorf("query account: %w", err)
	}
	return a, nil
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var (
		a                 entity.Account
		code, reset       *string
		codeExp, resetExp *time.Time
	)
	if err := row.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.IsVerified,
		&code, &codeExp, &reset, &resetExp,
		&a.LastLoginAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Verification = joinCode(code, codeExp)
	a.Reset = joinCode(reset, resetExp)
	return &a, nil
}

func splitCode(c *entity.OneTimeCode) (*string, *time.Time) {
	if c == nil {
		return nil, nil
	}
	v, exp := c.Value, c.ExpiresAt
	return &v, &exp
}

func joinCode(v *string, exp *time.Time) *entity.OneTimeCode {
	if v == nil || exp == nil {
		return nil
	}
	return &entity.OneTimeCode{Value: *v, ExpiresAt: *exp}
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
