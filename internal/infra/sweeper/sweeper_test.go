package sweeper

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom/internal/domain/entity"
	"pressroom/internal/infra/storage"
)

type stubRepo struct {
	paths []string
	count int64
}

func (s *stubRepo) Get(_ context.Context, _ int64) (*entity.Article, error)    { return nil, nil }
func (s *stubRepo) List(_ context.Context) ([]*entity.Article, error)          { return nil, nil }
func (s *stubRepo) Create(_ context.Context, _ *entity.Article) error          { return nil }
func (s *stubRepo) Update(_ context.Context, _ *entity.Article) error          { return nil }
func (s *stubRepo) Delete(_ context.Context, _ int64) error                    { return nil }
func (s *stubRepo) SlugTaken(_ context.Context, _ string, _ int64) (bool, error) {
	return false, nil
}
func (s *stubRepo) ImagePaths(_ context.Context) ([]string, error) { return s.paths, nil }
func (s *stubRepo) Count(_ context.Context) (int64, error)         { return s.count, nil }

func TestSweep_RemovesOnlyOrphans(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	kept, err := store.Store(ctx, "kept.png", strings.NewReader("kept"))
	require.NoError(t, err)
	orphan, err := store.Store(ctx, "orphan.png", strings.NewReader("orphan"))
	require.NoError(t, err)

	s := &Sweeper{
		Repo:  &stubRepo{paths: []string{kept}, count: 1},
		Store: store,
	}

	removed, err := s.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	exists, err := store.Exists(ctx, kept)
	require.NoError(t, err)
	assert.True(t, exists, "referenced image must survive the sweep")

	exists, err = store.Exists(ctx, orphan)
	require.NoError(t, err)
	assert.False(t, exists, "orphaned image must be removed")
}

func TestSweep_NothingToDo(t *testing.T) {
	ctx := context.Background()
	s := &Sweeper{
		Repo:  &stubRepo{},
		Store: storage.NewMemoryStore(),
	}

	removed, err := s.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestSchedule_EmptySpecDisables(t *testing.T) {
	s := &Sweeper{Repo: &stubRepo{}, Store: storage.NewMemoryStore()}

	c, err := s.Schedule(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestSchedule_InvalidSpec(t *testing.T) {
	s := &Sweeper{Repo: &stubRepo{}, Store: storage.NewMemoryStore()}

	_, err := s.Schedule(context.Background(), "not a cron spec")
	assert.Error(t, err)
}
