package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-auth-portal/internal/domain/entity"
	"github.com/oksasatya/go-auth-portal/internal/domain/repository"
)

const serviceColumns = `id, name, description, logo, communication_rate, date, created_at, updated_at`

type ServiceRepository struct {
	db DB
}

func NewServiceRepository(db DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *entity.Service) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO services (name, description, logo, communication_rate)
		VALUES ($1, $2, COALESCE(NULLIF($3, ''), 'default-logo.png'), $4)
		RETURNING id, logo, date, created_at, updated_at
	`, s.Name, s.Description, s.Logo, s.CommunicationRate)
	if err := row.Scan(&s.ID, &s.Logo, &s.Date, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	s, err := scanService(r.db.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrContentNotFound
		}
		return nil, fmt.Errorf("query service: %w", err)
	}
	return s, nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]entity.Service, error) {
	rows, err := r.db.Query(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	out := make([]entity.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *ServiceRepository) Update(ctx context.Context, s *entity.Service) error {
	row := r.db.QueryRow(ctx, `
		UPDATE services
		SET name = $1, description = $2, logo = $3, communication_rate = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at
	`, s.Name, s.Description, s.Logo, s.CommunicationRate, s.ID)
	if err := row.Scan(&s.UpdatedAt); err != nil {
		if isNoRows(err) {
			return repository.ErrContentNotFound
		}
		return fmt.Errorf("update service: %w", err)
	}
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		if isNoRows(err) {
			return repository.ErrContentNotFound
		}
		return fmt.Errorf("delete service: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrContentNotFound
	}
	return nil
}

func scanService(row pgx.Row) (*entity.Service, error) {
	var s entity.Service
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Logo, &s.CommunicationRate,
		&s.Date, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

var _ repository.ServiceRepository = (*ServiceRepository)(nil)
