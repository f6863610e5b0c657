// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article and User, along with
// slug handling and domain-specific errors.
package entity

import "time"

// Article represents a published or draft article in the system.
// Each article belongs to exactly one user and carries a URL-safe slug
// that is unique across all articles.
type Article struct {
	ID        int64
	UserID    int64
	Title     string
	Slug      string
	Content   string
	ImagePath string // storage path of the cover image; empty when none
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasImage reports whether the article references a stored cover image.
func (a *Article) HasImage() bool {
	return a.ImagePath != ""
}
