package articleform

import (
	"context"
	"fmt"
	"io"
	"time"

	"pressroom/internal/domain/entity"
	"pressroom/internal/infra/storage"
	"pressroom/internal/observability/metrics"
	"pressroom/internal/repository"
)

// MaxImageBytes is the upload size limit for article images.
const MaxImageBytes = 5 << 20 // 5 MB

// StagedImage is an uploaded image that has not been persisted yet.
// It is only written to storage when full validation passes on save.
type StagedImage struct {
	Filename    string
	Size        int64
	ContentType string
	Data        io.Reader
}

// Form is a single article create/edit form instance.
// It is bound to one article (persisted or transient), tracks the per-field
// error state across incremental validations, and persists the article on
// Save. A Form is used by a single request at a time and is not safe for
// concurrent use.
type Form struct {
	repo    repository.ArticleRepository
	store   storage.BlobStore
	userID  int64
	article *entity.Article
	editing bool
	staged  *StagedImage
	errors  FieldErrors
}

// Result carries the success outputs of a save: a one-shot flash message
// for the next rendered page and the location to redirect to.
type Result struct {
	Article  *entity.Article
	Flash    string
	Redirect string
}

// RedirectTarget is where a successful save navigates to.
const RedirectTarget = "/articles"

// New binds a form for the given user. articleID == 0 binds a transient
// blank article (create mode); otherwise the persisted row is loaded
// (edit mode). Returns entity.ErrNotFound when the row does not exist.
func New(ctx context.Context, repo repository.ArticleRepository, store storage.BlobStore, userID, articleID int64) (*Form, error) {
	f := &Form{
		repo:    repo,
		store:   store,
		userID:  userID,
		article: &entity.Article{},
		errors:  make(FieldErrors),
	}

	if articleID == 0 {
		return f, nil
	}

	article, err := repo.Get(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("bind article: %w", err)
	}
	if article == nil {
		return nil, entity.ErrNotFound
	}
	f.article = article
	f.editing = true
	return f, nil
}

// Article exposes the bound article for rendering.
func (f *Form) Article() *entity.Article { return f.article }

// Editing reports whether the form is bound to a persisted article.
func (f *Form) Editing() bool { return f.editing }

// Errors exposes the current per-field error state.
func (f *Form) Errors() FieldErrors { return f.errors }

// SetField applies a single field change and re-validates only that field,
// leaving every other field's error state untouched.
//
// Changing the title additionally overwrites the slug with the derived
// value before the title is validated, so a save immediately after a title
// change sees the fresh slug.
func (f *Form) SetField(ctx context.Context, field, value string) error {
	switch field {
	case FieldTitle:
		f.article.Title = value
		f.article.Slug = entity.Slugify(value)
	case FieldSlug:
		f.article.Slug = value
	case FieldContent:
		f.article.Content = value
	default:
		return fmt.Errorf("%w: unknown form field %q", entity.ErrInvalidInput, field)
	}
	return f.validateField(ctx, field)
}

// StageImage stages a replacement image and validates it incrementally.
// The file is not written to storage until Save.
func (f *Form) StageImage(ctx context.Context, img *StagedImage) error {
	f.staged = img
	return f.validateField(ctx, FieldImage)
}

// Save runs full validation and, when it passes, replaces the stored image
// if one is staged, attaches the owner, and inserts or updates the article.
//
// On validation failure it returns ErrValidation with the per-field errors
// populated; nothing is written to storage or the database. The form stays
// editable afterwards.
func (f *Form) Save(ctx context.Context) (*Result, error) {
	if err := f.validateAll(ctx); err != nil {
		return nil, err
	}
	if !f.errors.Empty() {
		return nil, ErrValidation
	}

	if f.staged != nil {
		if err := f.replaceImage(ctx); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	f.article.UpdatedAt = now

	if f.editing {
		if err := f.repo.Update(ctx, f.article); err != nil {
			return nil, fmt.Errorf("update article: %w", err)
		}
		metrics.RecordArticleSaved("update")
		return &Result{
			Article:  f.article,
			Flash:    "Article updated.",
			Redirect: RedirectTarget,
		}, nil
	}

	// Ownership must be attached before the insert.
	f.article.UserID = f.userID
	f.article.CreatedAt = now
	if err := f.repo.Create(ctx, f.article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	metrics.RecordArticleSaved("create")
	return &Result{
		Article:  f.article,
		Flash:    "Article created.",
		Redirect: RedirectTarget,
	}, nil
}

// replaceImage deletes the previously stored image (best-effort), stores
// the staged file under a generated name and points the article at it.
func (f *Form) replaceImage(ctx context.Context) error {
	if f.article.HasImage() {
		// The record moves to the new image regardless of the deletion
		// outcome; a failure here only leaks a file, which the upload
		// sweeper reclaims later.
		if removed, err := f.store.Delete(ctx, f.article.ImagePath); err == nil && removed {
			metrics.RecordImageDeleted()
		}
	}

	path, err := f.store.Store(ctx, f.staged.Filename, f.staged.Data)
	if err != nil {
		return fmt.Errorf("store image: %w", err)
	}
	metrics.RecordImageStored()

	f.article.ImagePath = path
	f.staged = nil
	return nil
}
