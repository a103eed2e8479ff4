package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := &AppError{
		Message: "something went wrong",
	}
	if err.Error() != "something went wrong" {
		t.Errorf("expected 'something went wrong', got %v", err.Error())
	}

	wrappedErr := errors.New("underlying error")
	errWithWrap := &AppError{
		Message: "failed operation",
		Err:     wrappedErr,
	}
	expected := "failed operation: underlying error"
	if errWithWrap.Error() != expected {
		t.Errorf("expected %q, got %q", expected, errWithWrap.Error())
	}
	if !errors.Is(errWithWrap, wrappedErr) {
		t.Error("expected errors.Is to find the wrapped error")
	}
}

func TestAppError_Code(t *testing.T) {
	err := &AppError{
		ErrorCode: "ERR_CODE_123",
	}
	if err.Code() != "ERR_CODE_123" {
		t.Errorf("expected ERR_CODE_123, got %v", err.Code())
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("route not found", "ROUTE_NOT_FOUND", "Check the URL")
	if err.Type != ErrorTypeNotFound {
		t.Errorf("expected TypeNotFound, got %v", err.Type)
	}
	if err.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", err.StatusCode)
	}
	if err.RecoverySuggestion() != "Check the URL" {
		t.Errorf("expected recovery suggestion, got %q", err.RecoverySuggestion())
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("invalid input", "VALIDATION_FAILED", "Check your fields")
	if err.Type != ErrorTypeValidation {
		t.Errorf("expected TypeValidation, got %v", err.Type)
	}
	if err.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err.StatusCode)
	}
	if err.RecoverySuggestion() != "Check your fields" {
		t.Errorf("expected 'Check your fields', got %v", err.RecoverySuggestion())
	}
}

func TestNewImageGenerationError(t *testing.T) {
	underlying := errors.New("provider failed")
	err := NewImageGenerationError("could not generate image", "IMAGE_FAILED", underlying)
	if err.Type != ErrorTypeImageGeneration {
		t.Errorf("expected TypeImageGeneration, got %v", err.Type)
	}
	if err.StatusCode != http.StatusBadGateway {
		t.Errorf("expected 502, got %v", err.StatusCode)
	}
	if err.Err != underlying {
		t.Error("underlying error not correctly wrapped")
	}
}
