package entity

import "time"

// User represents an authenticated principal.
// A user owns zero or more articles; only authenticated users may
// create or update articles.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
