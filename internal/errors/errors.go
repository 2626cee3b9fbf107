package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError is a local, pre-network failure: malformed task fields or a
// disallowed file type/size. It never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for a named field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InvalidStatusError reports a status-change request whose target is not one
// of the enumerated task statuses.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid task status %q", e.Status)
}

// PermissionError is a client-side permission guard rejection, e.g. deleting
// a file uploaded by someone else. Authoritative enforcement lives server-side.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	return e.Message
}

// AuthError is an HTTP 401/403: the session expired or the caller lacks
// permission. Never retried.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "authentication required"
}

// NotFoundError is an HTTP 404: the referenced task, file or project no
// longer exists.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "resource not found"
}

// NetworkError is a transport-level failure with no HTTP response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError is a 5xx or any other response carrying a domain error body.
// The server's message is surfaced verbatim when present.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error (status %d)", e.StatusCode)
}

// apiMessage is the error body shape the backend responds with.
type apiMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FromResponse classifies a non-2xx HTTP response into the error taxonomy.
// The response body is parsed for a message and surfaced verbatim when present.
func FromResponse(statusCode int, body []byte) error {
	msg := messageFromBody(body)
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return &AuthError{StatusCode: statusCode, Message: msg}
	case statusCode == http.StatusNotFound:
		return &NotFoundError{Message: msg}
	default:
		return &ServerError{StatusCode: statusCode, Message: msg}
	}
}

func messageFromBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload apiMessage
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
}

// Humanize converts any engine error into the user-facing string surfaced at
// an operation boundary. Errors never propagate past a repository or manager
// method without passing through here.
func Humanize(err error) string {
	if err == nil {
		return ""
	}

	var (
		validation *ValidationError
		status     *InvalidStatusError
		permission *PermissionError
		auth       *AuthError
		notFound   *NotFoundError
		network    *NetworkError
		server     *ServerError
	)
	switch {
	case stderrors.As(err, &validation):
		return validation.Error()
	case stderrors.As(err, &status):
		return status.Error()
	case stderrors.As(err, &permission):
		return permission.Message
	case stderrors.As(err, &auth):
		return "Your session has expired or you lack permission. Please sign in again."
	case stderrors.As(err, &notFound):
		if notFound.Message != "" {
			return notFound.Message
		}
		return "The requested item no longer exists."
	case stderrors.As(err, &network):
		return "Unable to reach the server. Please check your connection and try again."
	case stderrors.As(err, &server):
		if server.Message != "" {
			return server.Message
		}
		return "Something went wrong on the server. Please try again."
	default:
		return err.Error()
	}
}
