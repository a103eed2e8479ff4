package image

import "context"

// Payload is what an image endpoint hands back for one image: a URL to
// fetch, inline base64 data, or (degenerately) neither.
type Payload struct {
	URL     string
	B64JSON string
}

// Provider requests a single square image for prompt.
type Provider interface {
	Generate(ctx context.Context, prompt string) (*Payload, error)
}

// Notifier receives user-facing failure messages out of band.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }
