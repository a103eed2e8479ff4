package recipe

import "context"

// Provider sends a single user prompt to a chat-completion endpoint and
// returns the text of the first choice.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// NoContent is returned in place of a recipe when the endpoint answered
// with a well-formed response that carries no text.
const NoContent = "No content received."
