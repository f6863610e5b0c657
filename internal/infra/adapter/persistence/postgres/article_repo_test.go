package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"pressroom/internal/domain/entity"
	pg "pressroom/internal/infra/adapter/persistence/postgres"
)

func artRow(a *entity.Article) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "title", "slug",
		"content", "image_path", "created_at", "updated_at",
	}).AddRow(
		a.ID, a.UserID, a.Title, a.Slug,
		a.Content, a.ImagePath, a.CreatedAt, a.UpdatedAt,
	)
}

func TestArticleRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	want := &entity.Article{
		ID: 1, UserID: 2, Title: "First article",
		Slug: "first-article", Content: "body",
		ImagePath: "uploads/a.png", CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs(int64(1)).
		WillReturnRows(artRow(want))

	repo := pg.NewArticleRepo(db)
	got, err := repo.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "title", "slug",
			"content", "image_path", "created_at", "updated_at",
		}))

	repo := pg.NewArticleRepo(db)
	got, err := repo.Get(context.Background(), 99)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got != nil {
		t.Fatalf("Get = %+v, want nil for missing row", got)
	}
}

func TestArticleRepo_List(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery("FROM articles").
		WillReturnRows(artRow(&entity.Article{
			ID: 1, UserID: 2, Title: "x", Slug: "x",
			Content: "c", CreatedAt: now, UpdatedAt: now,
		}))

	repo := pg.NewArticleRepo(db)
	got, err := repo.List(context.Background())
	if err != nil || len(got) != 1 {
		t.Fatalf("List err=%v len=%d", err, len(got))
	}
}

func TestArticleRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	art := &entity.Article{
		UserID: 7, Title: "New", Slug: "new",
		Content: "body", CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO articles")).
		WithArgs(art.UserID, art.Title, art.Slug, art.Content, art.ImagePath, art.CreatedAt, art.UpdatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	repo := pg.NewArticleRepo(db)
	if err := repo.Create(context.Background(), art); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if art.ID != 42 {
		t.Fatalf("ID = %d, want 42", art.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Update(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	art := &entity.Article{
		ID: 3, UserID: 7, Title: "Edited", Slug: "edited",
		Content: "new body", ImagePath: "uploads/b.png", UpdatedAt: now,
	}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE articles SET")).
		WithArgs(art.Title, art.Slug, art.Content, art.ImagePath, art.UpdatedAt, art.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewArticleRepo(db)
	if err := repo.Update(context.Background(), art); err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Update_NoRows(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE articles SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := pg.NewArticleRepo(db)
	err := repo.Update(context.Background(), &entity.Article{ID: 999})
	if err == nil {
		t.Fatal("Update of missing row should fail")
	}
}

func TestArticleRepo_Delete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM articles")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewArticleRepo(db)
	if err := repo.Delete(context.Background(), 5); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
}

func TestArticleRepo_SlugTaken(t *testing.T) {
	tests := []struct {
		name      string
		slug      string
		excludeID int64
		taken     bool
	}{
		{name: "free slug", slug: "unused", excludeID: 0, taken: false},
		{name: "taken by another article", slug: "claimed", excludeID: 0, taken: true},
		{name: "own slug excluded while editing", slug: "mine", excludeID: 4, taken: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, _ := sqlmock.New()
			defer func() { _ = db.Close() }()

			mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
				WithArgs(tt.slug, tt.excludeID).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.taken))

			repo := pg.NewArticleRepo(db)
			got, err := repo.SlugTaken(context.Background(), tt.slug, tt.excludeID)
			if err != nil {
				t.Fatalf("SlugTaken err=%v", err)
			}
			if got != tt.taken {
				t.Fatalf("SlugTaken = %v, want %v", got, tt.taken)
			}
		})
	}
}

func TestArticleRepo_ImagePaths(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT image_path")).
		WillReturnRows(sqlmock.NewRows([]string{"image_path"}).
			AddRow("uploads/a.png").
			AddRow("uploads/b.png"))

	repo := pg.NewArticleRepo(db)
	got, err := repo.ImagePaths(context.Background())
	if err != nil {
		t.Fatalf("ImagePaths err=%v", err)
	}
	want := []string{"uploads/a.png", "uploads/b.png"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestArticleRepo_Count(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	repo := pg.NewArticleRepo(db)
	got, err := repo.Count(context.Background())
	if err != nil || got != 3 {
		t.Fatalf("Count = %d err=%v, want 3", got, err)
	}
}
