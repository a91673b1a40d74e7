// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Success responses may return any JSON shape (a user, a list, ...).
// Error responses always use the Response envelope:
//
//	{ "status": "error", "error": "User already exists" }
//
// Validation failures add the per-field list:
//
//	{ "status": "error", "error": "validation failed",
//	  "errors": [ { "field": "student_id", "message": "must be S followed by 7 digits" } ] }
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/campus-api/internal/validation"
)

// Response is the standard envelope returned for error cases.
type Response struct {
	Status string                  `json:"status"`
	Error  string                  `json:"error,omitempty"`
	Errors []validation.FieldError `json:"errors,omitempty"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes data as JSON with the given HTTP status code.
//
// Order matters: Header() then WriteHeader() then the body. Once
// WriteHeader is called, headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// NoContent writes a 204 with no body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// GeneralError wraps any Go error into the standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// Message builds an error Response from a plain message.
func Message(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError converts the per-field violations into a Response.
func ValidationError(errs validation.Errors) Response {
	return Response{
		Status: StatusError,
		Error:  "validation failed",
		Errors: errs,
	}
}

// Invalid writes a 422 for a request that failed decoding or validation.
func Invalid(w http.ResponseWriter, err error) {
	var errs validation.Errors
	if errors.As(err, &errs) {
		WriteJSON(w, http.StatusUnprocessableEntity, ValidationError(errs))
		return
	}
	WriteJSON(w, http.StatusUnprocessableEntity, GeneralError(err))
}

func NotFound(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusNotFound, Message(msg))
}

func Conflict(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusConflict, Message(msg))
}

// Internal logs err and writes a generic 500. Store details are never
// sent to the client.
func Internal(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()))
	WriteJSON(w, http.StatusInternalServerError, Message("internal server error"))
}
