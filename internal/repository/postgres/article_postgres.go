package postgres

import (
	"context"
	"database/sql"

	"petcareapi/internal/model"
	"petcareapi/internal/repository"
)

// ArticlePostgres is a PostgreSQL implementation of repository.ArticleRepository.
type ArticlePostgres struct {
	db *sql.DB
}

// NewArticlePostgres creates a new ArticlePostgres repository.
func NewArticlePostgres(db *sql.DB) *ArticlePostgres {
	return &ArticlePostgres{db: db}
}

var _ repository.ArticleRepository = (*ArticlePostgres)(nil)

const articleColumns = `id, title, body, category, thumbnail_path, published_at, poster_id`

// Create inserts a new article and returns the stored record.
func (r *ArticlePostgres) Create(ctx context.Context, a *model.Article) (*model.Article, error) {
	const q = `
		INSERT INTO articles (id, title, body, category, thumbnail_path, published_at, poster_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + articleColumns
	row := r.db.QueryRowContext(ctx, q,
		a.ID,
		a.Title,
		a.Body,
		a.Category,
		a.ThumbnailPath,
		a.PublishedAt,
		a.PosterID,
	)
	var out model.Article
	if err := scanArticle(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single article by id.
func (r *ArticlePostgres) FindByID(ctx context.Context, id string) (*model.Article, error) {
	const q = `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	var a model.Article
	if err := scanArticle(r.db.QueryRowContext(ctx, q, id), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns all articles, newest first.
func (r *ArticlePostgres) List(ctx context.Context) ([]model.Article, error) {
	const q = `SELECT ` + articleColumns + ` FROM articles ORDER BY published_at DESC, id`
	return r.queryMany(ctx, q)
}

// ListByPoster returns all articles referencing the given poster.
func (r *ArticlePostgres) ListByPoster(ctx context.Context, posterID string) ([]model.Article, error) {
	const q = `SELECT ` + articleColumns + ` FROM articles WHERE poster_id = $1 ORDER BY published_at DESC, id`
	return r.queryMany(ctx, q, posterID)
}

// Update applies a partial update; nil fields keep their stored value.
func (r *ArticlePostgres) Update(ctx context.Context, id string, upd model.ArticleUpdate) error {
	const q = `
		UPDATE articles SET
			title          = COALESCE($2::text, title),
			body           = COALESCE($3::text, body),
			category       = COALESCE($4::text, category),
			thumbnail_path = COALESCE($5::text, thumbnail_path)
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, id, upd.Title, upd.Body, upd.Category, upd.ThumbnailPath)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an article by id. Deleting a missing row is not an error.
func (r *ArticlePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM articles WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *ArticlePostgres) queryMany(ctx context.Context, q string, args ...any) ([]model.Article, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := make([]model.Article, 0)
	for rows.Next() {
		var a model.Article
		if err := scanArticle(rows, &a); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return articles, nil
}

func scanArticle(row rowScanner, a *model.Article) error {
	return row.Scan(
		&a.ID,
		&a.Title,
		&a.Body,
		&a.Category,
		&a.ThumbnailPath,
		&a.PublishedAt,
		&a.PosterID,
	)
}
