package repository

import (
	"context"

	"petcareapi/internal/model"
)

// ArticleRepository defines data access for articles.
type ArticleRepository interface {
	Create(ctx context.Context, a *model.Article) (*model.Article, error)
	FindByID(ctx context.Context, id string) (*model.Article, error)
	List(ctx context.Context) ([]model.Article, error)
	ListByPoster(ctx context.Context, posterID string) ([]model.Article, error)

	// Update applies a partial update; nil fields in upd are left unchanged.
	Update(ctx context.Context, id string, upd model.ArticleUpdate) error

	Delete(ctx context.Context, id string) error
}
