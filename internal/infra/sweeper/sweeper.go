// Package sweeper reclaims uploaded images that no article references.
// A crash between storing a new image and persisting the article row,
// or between deleting a row and its image, can leave files behind; the
// sweeper removes them on a cron schedule.
package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"pressroom/internal/infra/storage"
	"pressroom/internal/observability/metrics"
	"pressroom/internal/repository"
)

// Sweeper deletes stored blobs that no article row references.
type Sweeper struct {
	Repo   repository.ArticleRepository
	Store  storage.BlobStore
	Logger *slog.Logger
}

// Sweep removes every stored image that is not referenced by an
// article. It returns the number of blobs removed.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	stored, err := s.Store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("Sweep: %w", err)
	}

	referenced, err := s.Repo.ImagePaths(ctx)
	if err != nil {
		return 0, fmt.Errorf("Sweep: %w", err)
	}
	refSet := make(map[string]struct{}, len(referenced))
	for _, p := range referenced {
		refSet[p] = struct{}{}
	}

	removed := 0
	for _, p := range stored {
		if _, ok := refSet[p]; ok {
			continue
		}
		ok, err := s.Store.Delete(ctx, p)
		if err != nil {
			s.logger().Warn("failed to delete orphaned upload",
				slog.String("path", p),
				slog.Any("error", err))
			continue
		}
		if ok {
			removed++
			metrics.RecordOrphanedUploadSwept()
		}
	}

	if count, err := s.Repo.Count(ctx); err == nil {
		metrics.UpdateArticlesTotal(count)
	}

	return removed, nil
}

// Schedule registers the sweep on a cron scheduler and returns it
// started. An empty spec disables the sweeper and returns nil.
func (s *Sweeper) Schedule(ctx context.Context, spec string) (*cron.Cron, error) {
	if spec == "" {
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		defer cancel()

		removed, err := s.Sweep(runCtx)
		if err != nil {
			s.logger().Error("upload sweep failed", slog.Any("error", err))
			return
		}
		s.logger().Info("upload sweep completed", slog.Int("removed", removed))
	})
	if err != nil {
		return nil, fmt.Errorf("Schedule: %w", err)
	}

	c.Start()
	return c, nil
}

func (s *Sweeper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
