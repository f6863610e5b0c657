package repository

import (
	"context"

	"pressroom/internal/domain/entity"
)

type UserRepository interface {
	// GetByID retrieves a user by ID.
	// Returns (nil, nil) if the user is not found.
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// GetByEmail retrieves a user by email address.
	// Returns (nil, nil) if no user has that email.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Create inserts the user and assigns its generated ID.
	Create(ctx context.Context, user *entity.User) error
}
