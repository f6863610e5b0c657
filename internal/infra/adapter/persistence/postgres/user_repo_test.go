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

func userRow(u *entity.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "name", "password_hash", "created_at",
	}).AddRow(u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	want := &entity.User{
		ID: 1, Email: "editor@example.com", Name: "Editor",
		PasswordHash: "$2a$12$hash", CreatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs("editor@example.com").
		WillReturnRows(userRow(want))

	repo := pg.NewUserRepo(db)
	got, err := repo.GetByEmail(context.Background(), "editor@example.com")
	if err != nil {
		t.Fatalf("GetByEmail err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "name", "password_hash", "created_at",
		}))

	repo := pg.NewUserRepo(db)
	got, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("GetByEmail err=%v", err)
	}
	if got != nil {
		t.Fatalf("GetByEmail = %+v, want nil for missing row", got)
	}
}

func TestUserRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	user := &entity.User{
		Email: "new@example.com", Name: "New",
		PasswordHash: "$2a$12$hash", CreatedAt: time.Now(),
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(user.Email, user.Name, user.PasswordHash, user.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))

	repo := pg.NewUserRepo(db)
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if user.ID != 8 {
		t.Fatalf("ID = %d, want 8", user.ID)
	}
}
