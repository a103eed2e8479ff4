package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
)

// Failure classes reported by ClassifyError.
const (
	FailureTimeout     = "timeout"
	FailureRateLimit   = "rate_limit"
	FailureServerError = "server_error"
	FailureClientError = "client_error"
	FailureDecodeError = "decode_error"
	FailureCanceled    = "canceled"
	FailureUnknown     = "unknown"
)

// ClassifyError names the kind of failure behind err for logs and metrics.
// It never changes what the caller shows to the user.
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusTooManyRequests:
			return FailureRateLimit
		case statusErr.StatusCode >= 500:
			return FailureServerError
		default:
			return FailureClientError
		}
	}

	if errors.Is(err, ErrNoChoices) {
		return FailureDecodeError
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	if errors.Is(err, context.Canceled) {
		return FailureCanceled
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return FailureDecodeError
	}

	if strings.Contains(strings.ToLower(err.Error()), "timeout") {
		return FailureTimeout
	}
	return FailureUnknown
}
