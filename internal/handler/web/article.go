package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"pressroom/internal/domain/entity"
	"pressroom/internal/handler/web/requestid"
	"pressroom/internal/handler/web/session"
	"pressroom/internal/infra/storage"
	"pressroom/internal/repository"
	artUC "pressroom/internal/usecase/article"
	"pressroom/internal/usecase/articleform"
)

// maxUploadBytes bounds the whole multipart request body. It leaves
// headroom above the image size limit so the form rule, not the HTTP
// layer, rejects oversized images with a field error.
const maxUploadBytes = articleform.MaxImageBytes + 1<<20

// ArticleHandler serves the article listing, the create/edit form and
// the incremental validation endpoint.
type ArticleHandler struct {
	Articles *artUC.Service
	Repo     repository.ArticleRepository
	Store    storage.BlobStore
	Renderer *Renderer
}

type articleListView struct {
	Flash    string
	Articles []*entity.Article
}

type articleFormView struct {
	Flash    string
	Editing  bool
	Article  *entity.Article
	Errors   articleform.FieldErrors
	ImageURL string
}

// Index renders the article listing, newest first.
func (h *ArticleHandler) Index(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Articles.List(r.Context())
	if err != nil {
		h.serverError(w, r, "list articles", err)
		return
	}

	h.Renderer.Render(w, http.StatusOK, "articles", articleListView{
		Flash:    session.PopFlash(w, r),
		Articles: articles,
	})
}

// NewForm renders the empty article creation form.
func (h *ArticleHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	userID := session.UserIDFromContext(r.Context())

	form, err := articleform.New(r.Context(), h.Repo, h.Store, userID, 0)
	if err != nil {
		h.serverError(w, r, "init article form", err)
		return
	}

	h.renderForm(w, r, http.StatusOK, form)
}

// EditForm renders the form pre-filled with an existing article.
func (h *ArticleHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	articleID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || articleID <= 0 {
		http.NotFound(w, r)
		return
	}
	userID := session.UserIDFromContext(r.Context())

	form, err := articleform.New(r.Context(), h.Repo, h.Store, userID, articleID)
	if errors.Is(err, entity.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, "load article form", err)
		return
	}

	h.renderForm(w, r, http.StatusOK, form)
}

// Save handles the full form submission for both create and edit.
// Validation failures re-render the form with field errors; success
// flashes a confirmation and redirects to the article listing.
func (h *ArticleHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := session.UserIDFromContext(ctx)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	var articleID int64
	if raw := r.FormValue("id"); raw != "" && raw != "0" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "invalid article id", http.StatusBadRequest)
			return
		}
		articleID = id
	}

	form, err := articleform.New(ctx, h.Repo, h.Store, userID, articleID)
	if errors.Is(err, entity.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, "load article form", err)
		return
	}

	// Title first: it derives the slug, which the submitted slug value
	// then overrides if the user edited it by hand.
	if err := form.SetField(ctx, articleform.FieldTitle, r.FormValue("title")); err != nil {
		h.serverError(w, r, "set title", err)
		return
	}
	if err := form.SetField(ctx, articleform.FieldSlug, r.FormValue("slug")); err != nil {
		h.serverError(w, r, "set slug", err)
		return
	}
	if err := form.SetField(ctx, articleform.FieldContent, r.FormValue("content")); err != nil {
		h.serverError(w, r, "set content", err)
		return
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer func() { _ = file.Close() }()
		staged := &articleform.StagedImage{
			Filename:    header.Filename,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
			Data:        file,
		}
		if err := form.StageImage(ctx, staged); err != nil {
			h.serverError(w, r, "stage image", err)
			return
		}
	case errors.Is(err, http.ErrMissingFile):
		// No new image selected; any existing one is kept.
	default:
		http.Error(w, "invalid image upload", http.StatusBadRequest)
		return
	}

	result, err := form.Save(ctx)
	if errors.Is(err, articleform.ErrValidation) {
		h.renderForm(w, r, http.StatusUnprocessableEntity, form)
		return
	}
	if err != nil {
		h.serverError(w, r, "save article", err)
		return
	}

	session.SetFlash(w, result.Flash)
	http.Redirect(w, r, result.Redirect, http.StatusSeeOther)
}

// validateRequest is the JSON body of the incremental validation endpoint.
type validateRequest struct {
	ID    int64             `json:"id"`
	Field string            `json:"field"`
	Value string            `json:"value"`
	Form  map[string]string `json:"form"`
}

// validateResponse reports field errors after a single field changed.
// Slug carries the derived slug when the title was the changed field.
type validateResponse struct {
	Valid  bool                `json:"valid"`
	Errors map[string][]string `json:"errors"`
	Slug   string              `json:"slug,omitempty"`
}

// Validate checks a single field as the user types. The request names
// the changed field and carries the current form values so cross-field
// state (the derived slug, edit-mode uniqueness) is reconstructed.
func (h *ArticleHandler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := session.UserIDFromContext(ctx)

	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	switch req.Field {
	case articleform.FieldTitle, articleform.FieldSlug, articleform.FieldContent:
	default:
		http.Error(w, "unknown field", http.StatusBadRequest)
		return
	}

	form, err := articleform.New(ctx, h.Repo, h.Store, userID, req.ID)
	if errors.Is(err, entity.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, "load article form", err)
		return
	}

	// Restore the other submitted values without validating them;
	// only the changed field gets checked.
	for field, value := range req.Form {
		if field == req.Field {
			continue
		}
		switch field {
		case articleform.FieldTitle:
			form.Article().Title = value
		case articleform.FieldSlug:
			form.Article().Slug = value
		case articleform.FieldContent:
			form.Article().Content = value
		}
	}

	if err := form.SetField(ctx, req.Field, req.Value); err != nil {
		h.serverError(w, r, "validate field", err)
		return
	}

	resp := validateResponse{
		Valid:  form.Errors().Clean(req.Field),
		Errors: map[string][]string{},
	}
	for field := range form.Errors() {
		resp.Errors[field] = fieldErrorMessages(form.Errors(), field)
	}
	if req.Field == articleform.FieldTitle {
		resp.Slug = form.Article().Slug
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode validation response", slog.Any("error", err))
	}
}

// Delete removes an article and returns to the listing.
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	articleID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || articleID <= 0 {
		http.NotFound(w, r)
		return
	}

	err = h.Articles.Delete(r.Context(), articleID)
	if errors.Is(err, artUC.ErrArticleNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, "delete article", err)
		return
	}

	session.SetFlash(w, "Article deleted.")
	http.Redirect(w, r, "/articles", http.StatusSeeOther)
}

func (h *ArticleHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, form *articleform.Form) {
	view := articleFormView{
		Flash:   session.PopFlash(w, r),
		Editing: form.Editing(),
		Article: form.Article(),
		Errors:  form.Errors(),
	}
	if form.Article().HasImage() {
		view.ImageURL = h.Store.URL(form.Article().ImagePath)
	}
	h.Renderer.Render(w, status, "form", view)
}

func (h *ArticleHandler) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.Error("article handler error",
		slog.String("request_id", requestid.FromContext(r.Context())),
		slog.String("op", op),
		slog.Any("error", err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}
