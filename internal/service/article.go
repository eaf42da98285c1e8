package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"petcareapi/internal/model"
	"petcareapi/internal/repository"
	"petcareapi/internal/storage"
)

// ArticleInput is the payload for creating an article.
type ArticleInput struct {
	Title    string `json:"articleTitle"`
	Body     string `json:"articleBody"`
	Category string `json:"articleCategory"`
	PosterID string `json:"posterId"`
}

// ArticleDetails is an article with the thumbnail signed and the poster
// profile resolved.
type ArticleDetails struct {
	model.Article
	ThumbnailURL string      `json:"thumbnailImage"`
	Poster       *model.User `json:"poster,omitempty"`
}

// ArticleService defines the community article use cases.
type ArticleService interface {
	GetAll(ctx context.Context) ([]ArticleDetails, error)
	Get(ctx context.Context, id string) (*ArticleDetails, error)
	GetByPoster(ctx context.Context, posterID string) ([]ArticleDetails, error)

	Create(ctx context.Context, in ArticleInput, thumbnail *FileUpload) (*ArticleDetails, error)

	// Edit applies a partial update, replacing the thumbnail first when a
	// new one is supplied.
	Edit(ctx context.Context, id string, upd model.ArticleUpdate, thumbnail *FileUpload) (*ArticleDetails, error)

	Delete(ctx context.Context, id string) error
}

type articleService struct {
	articles repository.ArticleRepository
	users    repository.UserRepository
	store    storage.Storage
}

// NewArticleService constructs a new ArticleService.
func NewArticleService(articles repository.ArticleRepository, users repository.UserRepository, store storage.Storage) ArticleService {
	return &articleService{articles: articles, users: users, store: store}
}

func (s *articleService) GetAll(ctx context.Context) ([]ArticleDetails, error) {
	list, err := s.articles.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.detailsList(ctx, list)
}

func (s *articleService) Get(ctx context.Context, id string) (*ArticleDetails, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	a, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.details(ctx, a)
}

func (s *articleService) GetByPoster(ctx context.Context, posterID string) ([]ArticleDetails, error) {
	if posterID == "" {
		return nil, ErrIDRequired
	}
	list, err := s.articles.ListByPoster(ctx, posterID)
	if err != nil {
		return nil, err
	}
	return s.detailsList(ctx, list)
}

func (s *articleService) Create(ctx context.Context, in ArticleInput, thumbnail *FileUpload) (*ArticleDetails, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: articleTitle is required", ErrValidation)
	}
	if in.PosterID == "" {
		return nil, fmt.Errorf("%w: posterId is required", ErrValidation)
	}
	if _, err := s.users.FindByID(ctx, in.PosterID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	key, err := uploadImage(ctx, s.store, "article", thumbnail)
	if err != nil {
		return nil, err
	}

	a := &model.Article{
		ID:            uuid.New().String(),
		Title:         in.Title,
		Body:          in.Body,
		Category:      in.Category,
		ThumbnailPath: key,
		PublishedAt:   time.Now().UTC(),
		PosterID:      in.PosterID,
	}
	stored, err := s.articles.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("save article: %w", err)
	}
	return s.details(ctx, stored)
}

func (s *articleService) Edit(ctx context.Context, id string, upd model.ArticleUpdate, thumbnail *FileUpload) (*ArticleDetails, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if thumbnail != nil {
		key, err := uploadImage(ctx, s.store, "article", thumbnail)
		if err != nil {
			return nil, err
		}
		upd.ThumbnailPath = &key
	}
	if err := s.articles.Update(ctx, id, upd); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the thumbnail first, then the article row.
func (s *articleService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	a, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if a.ThumbnailPath != "" {
		if err := s.store.Delete(ctx, a.ThumbnailPath); err != nil {
			return fmt.Errorf("%w: delete thumbnail: %v", ErrUpstream, err)
		}
	}
	return s.articles.Delete(ctx, id)
}

func (s *articleService) details(ctx context.Context, a *model.Article) (*ArticleDetails, error) {
	poster, err := s.users.FindByID(ctx, a.PosterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ArticleDetails{
		Article:      *a,
		ThumbnailURL: signedURL(ctx, s.store, a.ThumbnailPath),
		Poster:       poster,
	}, nil
}

func (s *articleService) detailsList(ctx context.Context, list []model.Article) ([]ArticleDetails, error) {
	out := make([]ArticleDetails, 0, len(list))
	for i := range list {
		d, err := s.details(ctx, &list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}
