package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-auth-portal/internal/domain/entity"
	"github.com/oksasatya/go-auth-portal/internal/domain/repository"
)

const newsColumns = `id, title, description, author, category, image, date, created_at, updated_at`

type NewsRepository struct {
	db DB
}

func NewNewsRepository(db DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) Create(ctx context.Context, n *entity.News) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO news (title, description, author, category, image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, date, created_at, updated_at
	`, n.Title, n.Description, n.Author, n.Category, n.Image)
	if err := row.Scan(&n.ID, &n.Date, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return fmt.Errorf("insert news: %w", err)
	}
	return nil
}

func (r *NewsRepository) GetByID(ctx context.Context, id string) (*entity.News, error) {
	n, err := scanNews(r.db.QueryRow(ctx, `SELECT `+newsColumns+` FROM news WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrContentNotFound
		}
		return nil, fmt.Errorf("query news: %w", err)
	}
	return n, nil
}

func (r *NewsRepository) List(ctx context.Context) ([]entity.News, error) {
	rows, err := r.db.Query(ctx, `SELECT `+newsColumns+` FROM news ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	defer rows.Close()

	out := make([]entity.News, 0)
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("scan news: %w", err)
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

func (r *NewsRepository) Update(ctx context.Context, n *entity.News) error {
	row := r.db.QueryRow(ctx, `
		UPDATE news
		SET title = $1, description = $2, author = $3, category = $4, image = $5, updated_at = now()
		WHERE id = $6
		RETURNING updated_at
	`, n.Title, n.Description, n.Author, n.Category, n.Image, n.ID)
	if err := row.Scan(&n.UpdatedAt); err != nil {
		if isNoRows(err) {
			return repository.ErrContentNotFound
		}
		return fmt.Errorf("update news: %w", err)
	}
	return nil
}

func (r *NewsRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		if isNoRows(err) {
			return repository.ErrContentNotFound
		}
		return fmt.Errorf("delete news: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrContentNotFound
	}
	return nil
}

func (r *NewsRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM news`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count news: %w", err)
	}
	return n, nil
}

func scanNews(row pgx.Row) (*entity.News, error) {
	var n entity.News
	if err := row.Scan(&n.ID, &n.Title, &n.Description, &n.Author, &n.Category, &n.Image,
		&n.Date, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

var _ repository.NewsRepository = (*NewsRepository)(nil)
