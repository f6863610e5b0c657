package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"pressroom/internal/domain/entity"
	"pressroom/internal/repository"
)

// UserRepo implements the UserRepository interface using PostgreSQL.
type UserRepo struct{ db *sql.DB }

// NewUserRepo creates a new PostgreSQL-backed user repository.
func NewUserRepo(db *sql.DB) repository.UserRepository {
	return &UserRepo{db: db}
}

func (repo *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	const query = `
SELECT id, email, name, password_hash, created_at
FROM users
WHERE id = $1
LIMIT 1
`
	var user entity.User
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("GetByID: QueryRowContext: %w", err)
	}
	return &user, nil
}

func (repo *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const query = `
SELECT id, email, name, password_hash, created_at
FROM users
WHERE email = $1
LIMIT 1
`
	var user entity.User
	err := repo.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("GetByEmail: QueryRowContext: %w", err)
	}
	return &user, nil
}

func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	const query = `
INSERT INTO users (email, name, password_hash, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		user.Email, user.Name, user.PasswordHash, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}
