package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	apperrors "github.com/socialchef/leftovers/internal/errors"
	"github.com/socialchef/leftovers/internal/ingredient"
	"github.com/socialchef/leftovers/internal/kitchen"
)

// MaxRequestBytes caps the JSON body of a generate request.
const MaxRequestBytes = 64 << 10

type GenerateRequest struct {
	Ingredients []ingredient.Record `json:"ingredients"`
}

type ImageResponse struct {
	MIMEType   string `json:"mime_type"`
	DataBase64 string `json:"data_base64"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

type GenerateResponse struct {
	State     string         `json:"state"`
	Generated bool           `json:"generated"`
	Recipe    string         `json:"recipe,omitempty"`
	DishTitle string         `json:"dish_title,omitempty"`
	Image     *ImageResponse `json:"image,omitempty"`
	Warning   string         `json:"warning,omitempty"`
	Notices   []string       `json:"notices"`
}

// HandleGenerate runs one stateless generation for the posted ingredient list.
func (s *Server) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			appErr := apperrors.NewValidationError("Request body too large", "BODY_TOO_LARGE", "Send fewer or shorter ingredients.")
			appErr.StatusCode = http.StatusRequestEntityTooLarge
			writeError(w, appErr)
			return
		}
		writeError(w, apperrors.NewValidationError("Invalid request body", "INVALID_BODY", "Send {\"ingredients\": [{\"item\", \"quantity\", \"unit\"}]}."))
		return
	}

	sess := kitchen.NewSession(uuid.New().String())
	sess.Ingredients = ingredient.List(req.Ingredients)

	sess.Lock()
	outcome := s.kitchen.Generate(r.Context(), sess)
	sess.Unlock()

	resp := GenerateResponse{
		State:     outcome.State.String(),
		Generated: outcome.Generated,
		Recipe:    outcome.Recipe,
		DishTitle: outcome.DishTitle,
		Warning:   outcome.Warning,
		Notices:   []string(outcome.Notices),
	}
	if resp.Notices == nil {
		resp.Notices = []string{}
	}
	if img := outcome.Image; img != nil {
		resp.Image = &ImageResponse{
			MIMEType:   img.MIMEType(),
			DataBase64: base64.StdEncoding.EncodeToString(img.Data),
			Width:      img.Width,
			Height:     img.Height,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
