package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestClassifyError_Status(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{429, FailureRateLimit},
		{500, FailureServerError},
		{503, FailureServerError},
		{401, FailureClientError},
		{400, FailureClientError},
	}

	for _, tt := range tests {
		err := fmt.Errorf("wrapped: %w", &StatusError{Provider: "Grok", StatusCode: tt.status})
		if got := ClassifyError(err); got != tt.want {
			t.Errorf("ClassifyError(status %d) = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestClassifyError_Timeout(t *testing.T) {
	if got := ClassifyError(context.DeadlineExceeded); got != FailureTimeout {
		t.Errorf("Expected timeout, got %s", got)
	}
	if got := ClassifyError(errors.New("Client.Timeout exceeded while awaiting headers")); got != FailureTimeout {
		t.Errorf("Expected timeout from message, got %s", got)
	}
}

func TestClassifyError_Decode(t *testing.T) {
	var v struct{}
	err := json.Unmarshal([]byte("<html>"), &v)
	if got := ClassifyError(fmt.Errorf("decoding: %w", err)); got != FailureDecodeError {
		t.Errorf("Expected decode_error, got %s", got)
	}
}

func TestClassifyError_Other(t *testing.T) {
	if got := ClassifyError(nil); got != "" {
		t.Errorf("Expected empty class for nil, got %s", got)
	}
	if got := ClassifyError(context.Canceled); got != FailureCanceled {
		t.Errorf("Expected canceled, got %s", got)
	}
	if got := ClassifyError(errors.New("connection refused")); got != FailureUnknown {
		t.Errorf("Expected unknown, got %s", got)
	}
}

func TestStatusError_Message(t *testing.T) {
	err := &StatusError{Provider: "Grok", StatusCode: 401, Body: `{"error":"bad key"}`}
	want := `Grok API error (status 401): {"error":"bad key"}`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
