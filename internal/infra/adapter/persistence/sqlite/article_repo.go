// Package sqlite provides SQLite implementations of the repository
// interfaces. It mirrors the PostgreSQL adapter and is used for local
// development and lightweight deployments.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"pressroom/internal/domain/entity"
	"pressroom/internal/repository"
)

// ArticleRepo implements the ArticleRepository interface using SQLite.
type ArticleRepo struct{ db *sql.DB }

// NewArticleRepo creates a new SQLite-backed article repository.
func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	const query = `
SELECT id, user_id, title, slug, content, COALESCE(image_path, ''), created_at, updated_at
FROM articles
WHERE id = ?
LIMIT 1
`
	var article entity.Article
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&article.ID, &article.UserID, &article.Title, &article.Slug,
		&article.Content, &article.ImagePath, &article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("Get: QueryRowContext: %w", err)
	}
	return &article, nil
}

// List retrieves all articles ordered by creation date (newest first).
func (repo *ArticleRepo) List(ctx context.Context) ([]*entity.Article, error) {
	const query = `
SELECT id, user_id, title, slug, content, COALESCE(image_path, ''), created_at, updated_at
FROM articles
ORDER BY created_at DESC
`

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 50)
	for rows.Next() {
		var article entity.Article
		err := rows.Scan(&article.ID,
			&article.UserID, &article.Title,
			&article.Slug, &article.Content,
			&article.ImagePath, &article.CreatedAt, &article.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		articles = append(articles, &article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows.Err: %w", err)
	}

	return articles, nil
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles
	   (user_id, title, slug, content, image_path, created_at, updated_at)
VALUES (?, ?, ?, ?, NULLIF(?, ''), ?, ?)`
	res, err := repo.db.ExecContext(ctx, query,
		article.UserID, article.Title, article.Slug,
		article.Content, article.ImagePath,
		article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	article.ID = id
	return nil
}

func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	const query = `
UPDATE articles SET
       title      = ?,
       slug       = ?,
       content    = ?,
       image_path = NULLIF(?, ''),
       updated_at = ?
WHERE id = ?`
	res, err := repo.db.ExecContext(ctx, query,
		article.Title, article.Slug, article.Content,
		article.ImagePath, article.UpdatedAt, article.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: no rows affected")
	}
	return nil
}

func (repo *ArticleRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM articles WHERE id = ?`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: no rows affected")
	}
	return nil
}

// SlugTaken reports whether another article already claims the slug.
func (repo *ArticleRepo) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM articles WHERE slug = ? AND id <> ?)`
	var taken bool
	err := repo.db.QueryRowContext(ctx, query, slug, excludeID).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("SlugTaken: %w", err)
	}
	return taken, nil
}

// ImagePaths returns every image path referenced by an article.
func (repo *ArticleRepo) ImagePaths(ctx context.Context) ([]string, error) {
	const query = `SELECT image_path FROM articles WHERE image_path IS NOT NULL`

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ImagePaths: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	paths := make([]string, 0, 50)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("ImagePaths: Scan: %w", err)
		}
		paths = append(paths, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ImagePaths: rows.Err: %w", err)
	}

	return paths, nil
}

func (repo *ArticleRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM articles`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}
