package article

import (
	"context"
	"fmt"
	"log/slog"

	"pressroom/internal/domain/entity"
	"pressroom/internal/infra/storage"
	"pressroom/internal/observability/metrics"
	"pressroom/internal/repository"
)

// Service provides article management use cases.
// It handles business logic for article operations and delegates
// persistence to the repository and blob cleanup to the store.
type Service struct {
	Repo  repository.ArticleRepository
	Store storage.BlobStore
}

// List retrieves all articles, newest first.
func (s *Service) List(ctx context.Context) ([]*entity.Article, error) {
	articles, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// Get retrieves an article by its ID.
// Returns ErrInvalidArticleID if the ID is not positive and
// ErrArticleNotFound if no such article exists.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}

	article, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// Delete removes an article and, best-effort, its stored image.
// A failed image deletion is logged and does not fail the operation;
// the upload sweeper reclaims the file later.
func (s *Service) Delete(ctx context.Context, id int64) error {
	article, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	if article.HasImage() {
		removed, err := s.Store.Delete(ctx, article.ImagePath)
		if err != nil {
			slog.Default().Warn("failed to delete article image",
				slog.Int64("article_id", id),
				slog.String("image_path", article.ImagePath),
				slog.Any("error", err))
		} else if removed {
			metrics.RecordImageDeleted()
		}
	}

	return nil
}
