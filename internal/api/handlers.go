package api

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/socialchef/leftovers/internal/errors"
	"github.com/socialchef/leftovers/internal/ingredient"
	"github.com/socialchef/leftovers/internal/kitchen"
	"github.com/socialchef/leftovers/internal/middleware"
	"github.com/socialchef/leftovers/internal/services/image"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	// Data URIs are built from decoded image bytes, never from user input.
	"dataURI": func(img *image.Image) template.URL { return template.URL(img.DataURI()) },
}).ParseFS(templateFS, "templates/index.html"))

// Generator runs the generate action for a session.
type Generator interface {
	Generate(ctx context.Context, s *kitchen.Session) *kitchen.Outcome
}

type Server struct {
	kitchen Generator
}

func NewServer(k Generator) *Server {
	return &Server{kitchen: k}
}

type pageData struct {
	Ingredients ingredient.List
	CanGenerate bool
	Outcome     *kitchen.Outcome
}

// HandleIndex renders the ingredient form and the last outcome.
func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sess.Lock()
	data := pageData{
		Ingredients: sess.Ingredients.Clone(),
		CanGenerate: sess.CanGenerate(),
		Outcome:     sess.Outcome,
	}
	sess.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render index", "error", err)
	}
}

// HandleIngredients saves the posted rows, then applies the requested action.
func (s *Server) HandleIngredients(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	sess.Lock()
	defer sess.Unlock()

	applyRows(sess, r.PostForm)

	action := r.PostForm.Get("action")
	switch {
	case action == "add":
		sess.AddIngredient()
		sess.Outcome = nil
	case strings.HasPrefix(action, "remove:"):
		index, err := strconv.Atoi(strings.TrimPrefix(action, "remove:"))
		if err != nil {
			http.Error(w, "Invalid row index", http.StatusBadRequest)
			return
		}
		if err := sess.RemoveIngredient(index); err != nil {
			writeError(w, err)
			return
		}
		sess.Outcome = nil
	case action == "generate":
		s.kitchen.Generate(r.Context(), sess)
	case action == "save", action == "":
		sess.Outcome = nil
	default:
		http.Error(w, "Unknown action", http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// applyRows copies posted item/quantity/unit columns onto the session's rows.
// Extra posted rows are ignored; missing ones are left unchanged.
func applyRows(sess *kitchen.Session, form map[string][]string) {
	columns := []ingredient.Field{ingredient.FieldItem, ingredient.FieldQuantity, ingredient.FieldUnit}
	for _, field := range columns {
		values := form[string(field)]
		for i, value := range values {
			if i >= len(sess.Ingredients) {
				break
			}
			_ = sess.UpdateIngredient(i, field, value)
		}
	}
}

// HandleNotFound answers unknown routes with a JSON 404.
func (s *Server) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, apperrors.NewNotFoundError("Route not found", "ROUTE_NOT_FOUND", "Use GET / or POST /api/generate."))
}

func writeError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.NewInternalError("internal error", "INTERNAL", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	json.NewEncoder(w).Encode(appErr)
}
