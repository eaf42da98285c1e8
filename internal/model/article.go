package model

import "time"

// Article is a community post with an optional thumbnail image.
type Article struct {
	ID            string    `json:"id"`
	Title         string    `json:"articleTitle"`
	Body          string    `json:"articleBody"`
	Category      string    `json:"articleCategory"`
	ThumbnailPath string    `json:"-"`
	PublishedAt   time.Time `json:"publishedTime"`
	PosterID      string    `json:"posterId"`
}

// ArticleUpdate carries a partial article update; nil fields are left unchanged.
type ArticleUpdate struct {
	Title         *string
	Body          *string
	Category      *string
	ThumbnailPath *string
}
