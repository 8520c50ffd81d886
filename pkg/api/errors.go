package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized is matched by APIErrors of class ErrorClassUnauthorized,
	// including requests refused locally because no token is stored.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRetryExhausted is returned when all retry attempts are exhausted.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	// ErrContextCancelled is returned when the context ends during backoff.
	ErrContextCancelled = errors.New("context cancelled")
)

// ErrorClass is a coarse classification of request failures.
type ErrorClass string

const (
	ErrorClassClient       ErrorClass = "client"
	ErrorClassUnauthorized ErrorClass = "unauthorized"
	ErrorClassServer       ErrorClass = "server"
	ErrorClassNetwork      ErrorClass = "network"
	ErrorClassDecode       ErrorClass = "decode"
)

// APIError describes a failed API call. Message is what the backend said,
// or a generic description when it said nothing useful.
type APIError struct {
	StatusCode int
	Class      ErrorClass
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("api %s error (status %d): %s: %v", e.Class, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("api %s error (status %d): %s", e.Class, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Class == ErrorClassUnauthorized
}

func classifyStatus(status int) ErrorClass {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrorClassUnauthorized
	case status >= 400 && status < 500:
		return ErrorClassClient
	case status >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}

// shouldRetry reports whether a failure of the given class is worth repeating.
func shouldRetry(class ErrorClass) bool {
	switch class {
	case ErrorClassServer, ErrorClassNetwork:
		return true
	default:
		return false
	}
}

// ClassOf returns the class of the first APIError in err's chain.
func ClassOf(err error) ErrorClass {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Class
	}
	return ""
}

// Message returns a short, user-facing description of err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// errorMessage extracts the backend's {"error": "..."} or {"message": "..."}.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg, ok := payload.Error.(string); ok && msg != "" {
			return msg
		}
		if payload.Message != "" {
			return payload.Message
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 && !strings.HasPrefix(text, "<") {
		return text
	}
	return http.StatusText(status)
}
