// Package articleform implements the article create/edit form component:
// record binding, incremental and full validation, slug derivation, image
// replacement and the save pipeline.
package articleform

import "errors"

// ErrValidation indicates that full validation failed on save.
// The per-field error kinds are available via Form.Errors.
var ErrValidation = errors.New("article form validation failed")

// Kind identifies a validation failure on a single field.
type Kind string

// Validation error kinds surfaced to callers and templates.
const (
	// KindRequired: the field is empty.
	KindRequired Kind = "required"
	// KindMin: the field is shorter than its minimum length.
	KindMin Kind = "min"
	// KindAlphaDash: the slug contains characters outside [A-Za-z0-9_-].
	KindAlphaDash Kind = "alpha_dash"
	// KindUnique: another article already uses the slug.
	KindUnique Kind = "unique"
	// KindImage: the staged upload is not an image file.
	KindImage Kind = "image"
	// KindMax: the staged upload exceeds the size limit.
	KindMax Kind = "max"
)

// Form field paths, as submitted by the form and reported in errors.
const (
	FieldImage   = "image"
	FieldTitle   = "article.title"
	FieldSlug    = "article.slug"
	FieldContent = "article.content"
)

// FieldErrors maps a field path to its current validation failures.
// Incremental validation replaces one field's entry without touching the
// others; full validation rebuilds the whole map.
type FieldErrors map[string][]Kind

// Has reports whether the field currently carries the given error kind.
func (e FieldErrors) Has(field string, kind Kind) bool {
	for _, k := range e[field] {
		if k == kind {
			return true
		}
	}
	return false
}

// Clean reports whether the field currently has no errors.
func (e FieldErrors) Clean(field string) bool {
	return len(e[field]) == 0
}

// Empty reports whether no field has an error.
func (e FieldErrors) Empty() bool {
	for _, kinds := range e {
		if len(kinds) > 0 {
			return false
		}
	}
	return true
}
