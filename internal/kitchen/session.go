package kitchen

import (
	"sync"

	"github.com/socialchef/leftovers/internal/ingredient"
	"github.com/socialchef/leftovers/internal/services/image"
)

// Session is the caller-owned state of one user: the ingredient form and
// the last generation outcome.
type Session struct {
	ID          string
	Ingredients ingredient.List
	State       State
	Outcome     *Outcome

	mu sync.Mutex
}

// NewSession starts a session with one blank ingredient row.
func NewSession(id string) *Session {
	return &Session{
		ID:          id,
		Ingredients: ingredient.NewList(),
		State:       StateIdle,
	}
}

// Lock serializes use of one session across concurrent requests.
func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

func (s *Session) AddIngredient() {
	s.Ingredients.Add()
}

func (s *Session) RemoveIngredient(index int) error {
	return s.Ingredients.Remove(index)
}

func (s *Session) UpdateIngredient(index int, field ingredient.Field, value string) error {
	return s.Ingredients.Update(index, field, value)
}

// CanGenerate reports whether the generate action should be enabled.
func (s *Session) CanGenerate() bool {
	return s.Ingredients.HasContent()
}

// Outcome is everything shown after one generate action. Each action
// replaces the previous outcome.
type Outcome struct {
	Generated bool
	Recipe    string
	DishTitle string
	Image     *image.Image
	Warning   string
	Notices   Notices
	State     State
}

// Notices collects user-facing error banners raised during generation.
type Notices []string

// Notify implements image.Notifier.
func (n *Notices) Notify(message string) {
	*n = append(*n, message)
}
