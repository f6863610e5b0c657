// Package web provides the server-rendered HTML handlers for the
// article management UI: login, article listing and the article form.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"pressroom/internal/usecase/articleform"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders embedded HTML templates. Each page template is
// parsed together with the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates. It fails fast on parse
// errors so a broken template is caught at startup.
func NewRenderer() (*Renderer, error) {
	pages := map[string]*template.Template{}
	for _, name := range []string{"login", "articles", "form"} {
		t, err := template.New("layout.html").Funcs(template.FuncMap{
			"fieldErrors": fieldErrorMessages,
		}).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page with the given status code and data.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) {
	t, ok := r.pages[page]
	if !ok {
		slog.Error("unknown template", slog.String("page", page))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout.html", data); err != nil {
		slog.Error("template execution failed",
			slog.String("page", page),
			slog.Any("error", err))
	}
}

// fieldErrorMessages converts the validation kinds recorded for a field
// into user-facing messages, in rule order.
func fieldErrorMessages(errs articleform.FieldErrors, field string) []string {
	kinds, ok := errs[field]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		out = append(out, errorMessage(field, kind))
	}
	return out
}

func errorMessage(field string, kind articleform.Kind) string {
	label := fieldLabel(field)
	switch kind {
	case articleform.KindRequired:
		return fmt.Sprintf("The %s field is required.", label)
	case articleform.KindMin:
		return fmt.Sprintf("The %s must be at least 4 characters.", label)
	case articleform.KindAlphaDash:
		return fmt.Sprintf("The %s may only contain letters, numbers, dashes and underscores.", label)
	case articleform.KindUnique:
		return fmt.Sprintf("The %s has already been taken.", label)
	case articleform.KindImage:
		return "The file must be an image."
	case articleform.KindMax:
		return "The image may not be larger than 5 MB."
	default:
		return fmt.Sprintf("The %s is invalid.", label)
	}
}

func fieldLabel(field string) string {
	switch field {
	case articleform.FieldTitle:
		return "title"
	case articleform.FieldSlug:
		return "slug"
	case articleform.FieldContent:
		return "content"
	case articleform.FieldImage:
		return "image"
	default:
		return field
	}
}
