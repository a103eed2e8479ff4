// Package integration runs the full HTTP stack against fake upstream
// chat-completion and image-generation servers.
package integration

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/socialchef/leftovers/internal/api"
	"github.com/socialchef/leftovers/internal/config"
	"github.com/socialchef/leftovers/internal/kitchen"
	"github.com/socialchef/leftovers/internal/middleware"
	imagegen "github.com/socialchef/leftovers/internal/services/image"
	"github.com/socialchef/leftovers/internal/services/recipe"
	"github.com/socialchef/leftovers/internal/session"
)

// ============================================================================
// Fake chat-completion endpoint
// ============================================================================

type fakeGrok struct {
	mu      sync.Mutex
	prompts []string
	status  int
	content string
	server  *httptest.Server
}

func newFakeGrok(t *testing.T, content string) *fakeGrok {
	f := &fakeGrok{status: http.StatusOK, content: content}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && len(req.Messages) > 0 {
			f.mu.Lock()
			f.prompts = append(f.prompts, req.Messages[0].Content)
			f.mu.Unlock()
		}

		f.mu.Lock()
		status, content := f.status, f.content
		f.mu.Unlock()

		if status != http.StatusOK {
			w.WriteHeader(status)
			w.Write([]byte(content))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": content}}},
		})
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeGrok) fail(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.content = status, body
}

func (f *fakeGrok) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

// ============================================================================
// Fake image-generation endpoint
// ============================================================================

type imageMode int

const (
	imageBase64 imageMode = iota
	imageURL
	imageError
)

type fakeImages struct {
	mu      sync.Mutex
	prompts []string
	mode    imageMode
	png     []byte
	server  *httptest.Server
}

func newFakeImages(t *testing.T, mode imageMode) *fakeImages {
	f := &fakeImages{mode: mode, png: testPNG(t, 4, 3)}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/images/generations", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string `json:"prompt"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.prompts = append(f.prompts, req.Prompt)
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch f.mode {
		case imageError:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": {"message": "image backend down", "type": "server_error"}}`))
		case imageURL:
			fmt.Fprintf(w, `{"created": 1700000000, "data": [{"url": %q}]}`, f.server.URL+"/files/dish.png")
		default:
			fmt.Fprintf(w, `{"created": 1700000000, "data": [{"b64_json": %q}]}`, base64.StdEncoding.EncodeToString(f.png))
		}
	})
	mux.HandleFunc("/files/dish.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(f.png)
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeImages) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{G: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// ============================================================================
// Application wiring
// ============================================================================

type stack struct {
	server *httptest.Server
	store  *session.Store
}

func newStack(t *testing.T, grok *fakeGrok, images *fakeImages) *stack {
	t.Helper()

	recipes := recipe.NewGenerator(recipe.NewProvider(config.RecipeConfig{
		Endpoint:  grok.server.URL + "/v1/chat/completions",
		Model:     "grok-4",
		MaxTokens: 500,
		Timeout:   5 * time.Second,
	}, "test-grok-key"))

	imageProvider := imagegen.NewOpenAIProvider(config.ImageConfig{
		BaseURL: images.server.URL + "/v1/",
		Model:   "gpt-image-1",
		Size:    "1024x1024",
		Timeout: 5 * time.Second,
	}, "test-openai-key", nil)

	k := kitchen.New(recipes, imagegen.NewGenerator(imageProvider, 5*time.Second))
	store := session.NewStore(session.DefaultTTL)
	sessions := middleware.NewSessions("integration-secret", store, false)

	server := httptest.NewServer(api.NewRouter("leftovers-test", api.NewServer(k), sessions))
	t.Cleanup(server.Close)
	return &stack{server: server, store: store}
}

// browser returns a client that keeps its session cookie across requests.
func (s *stack) browser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar, Timeout: 20 * time.Second}
}
