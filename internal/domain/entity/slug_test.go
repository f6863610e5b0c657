package entity_test

import (
	"testing"

	"pressroom/internal/domain/entity"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "simple words", title: "Title for article", want: "title-for-article"},
		{name: "already lowercase", title: "hello world", want: "hello-world"},
		{name: "punctuation collapsed", title: "Go 1.24: what's new?", want: "go-1-24-what-s-new"},
		{name: "leading and trailing junk trimmed", title: "  --Hello--  ", want: "hello"},
		{name: "digits kept", title: "Top 10 tips", want: "top-10-tips"},
		{name: "consecutive separators collapse", title: "a   b", want: "a-b"},
		{name: "empty title", title: "", want: ""},
		{name: "only separators", title: "!!!", want: ""},
		{name: "non-ascii dropped", title: "café crème", want: "caf-cr-me"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entity.Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"title-for-article", true},
		{"under_score", true},
		{"MixedCase123", true},
		{"", false},
		{"has space", false},
		{"slash/in/it", false},
		{"questionable?", false},
		{"dots.not.allowed", false},
	}

	for _, tt := range tests {
		if got := entity.ValidSlug(tt.slug); got != tt.want {
			t.Errorf("ValidSlug(%q) = %v, want %v", tt.slug, got, tt.want)
		}
	}
}

func TestArticleHasImage(t *testing.T) {
	a := &entity.Article{}
	if a.HasImage() {
		t.Error("HasImage() = true for article without image")
	}
	a.ImagePath = "uploads/cover.png"
	if !a.HasImage() {
		t.Error("HasImage() = false for article with image")
	}
}
