// Package repository declares the persistence interfaces consumed by the
// use case layer. Concrete implementations live under
// internal/infra/adapter/persistence.
package repository

import (
	"context"

	"pressroom/internal/domain/entity"
)

type ArticleRepository interface {
	// Get retrieves an article by ID.
	// Returns (nil, nil) if the article is not found.
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// List retrieves all articles ordered by creation date (newest first).
	List(ctx context.Context) ([]*entity.Article, error)
	// Create inserts the article and assigns its generated ID.
	Create(ctx context.Context, article *entity.Article) error
	Update(ctx context.Context, article *entity.Article) error
	Delete(ctx context.Context, id int64) error
	// SlugTaken reports whether any article other than excludeID already
	// uses the given slug. Pass excludeID = 0 when creating a new article.
	//
	// This check is best-effort under concurrent submissions; the unique
	// constraint on articles.slug is the real guard.
	SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error)
	// ImagePaths returns the image paths referenced by any article.
	// Used by the upload sweeper to identify orphaned files.
	ImagePaths(ctx context.Context) ([]string, error)
	// Count returns the total number of articles.
	Count(ctx context.Context) (int64, error)
}
