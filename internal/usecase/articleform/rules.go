package articleform

import (
	"context"
	"strings"
	"unicode/utf8"

	"pressroom/internal/domain/entity"
	"pressroom/internal/observability/metrics"
)

// titleMinLen is the minimum title length in characters.
const titleMinLen = 4

// rule is one predicate in a field's ordered rule list. A field's rules
// are evaluated top to bottom and stop at the first failure.
type rule struct {
	kind Kind
	ok   func(ctx context.Context) (bool, error)
}

// fieldRules returns the ordered rule list for a field.
func (f *Form) fieldRules(field string) []rule {
	switch field {
	case FieldImage:
		return []rule{
			{KindImage, func(context.Context) (bool, error) {
				if f.staged == nil {
					return true, nil
				}
				return strings.HasPrefix(f.staged.ContentType, "image/"), nil
			}},
			{KindMax, func(context.Context) (bool, error) {
				return f.staged == nil || f.staged.Size <= MaxImageBytes, nil
			}},
		}
	case FieldTitle:
		return []rule{
			{KindRequired, func(context.Context) (bool, error) {
				return f.article.Title != "", nil
			}},
			{KindMin, func(context.Context) (bool, error) {
				return utf8.RuneCountInString(f.article.Title) >= titleMinLen, nil
			}},
		}
	case FieldSlug:
		return []rule{
			{KindRequired, func(context.Context) (bool, error) {
				return f.article.Slug != "", nil
			}},
			{KindAlphaDash, func(context.Context) (bool, error) {
				return entity.ValidSlug(f.article.Slug), nil
			}},
			{KindUnique, func(ctx context.Context) (bool, error) {
				taken, err := f.repo.SlugTaken(ctx, f.article.Slug, f.article.ID)
				return !taken, err
			}},
		}
	case FieldContent:
		return []rule{
			{KindRequired, func(context.Context) (bool, error) {
				return f.article.Content != "", nil
			}},
		}
	}
	return nil
}

// validateField re-evaluates a single field's rules and replaces that
// field's error entry. Rule evaluation errors (e.g. the uniqueness query
// failing) abort without touching the error state.
func (f *Form) validateField(ctx context.Context, field string) error {
	for _, r := range f.fieldRules(field) {
		pass, err := r.ok(ctx)
		if err != nil {
			return err
		}
		if !pass {
			f.errors[field] = []Kind{r.kind}
			metrics.RecordFormValidationFailure(field, string(r.kind))
			return nil
		}
	}
	delete(f.errors, field)
	return nil
}

// validateAll runs every field's rules, as done on save.
func (f *Form) validateAll(ctx context.Context) error {
	for _, field := range []string{FieldImage, FieldTitle, FieldSlug, FieldContent} {
		if err := f.validateField(ctx, field); err != nil {
			return err
		}
	}
	return nil
}
