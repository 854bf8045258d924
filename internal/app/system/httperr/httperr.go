// Package httperr writes JSON error responses and logs server-side
// failures.
//
// Every error body has the shape {"message": "..."}; the client surfaces
// the message text directly as a notification, so messages are written
// for end users. Unexpected errors are logged with request context via
// ErrorLogger before the 500 is sent.
package httperr

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Response is the uniform JSON error body.
type Response struct {
	Message string `json:"message"`
}

// Write sends a JSON error body with the given status code.
func Write(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{Message: message})
}

// BadRequest sends 400 with the given message (validation failures,
// missing identifying fields).
func BadRequest(w http.ResponseWriter, message string) {
	Write(w, http.StatusBadRequest, message)
}

// Unauthorized sends 401 with the given message (missing or invalid token).
func Unauthorized(w http.ResponseWriter, message string) {
	Write(w, http.StatusUnauthorized, message)
}

// Forbidden sends 403 with the given message. The message distinguishes
// "wrong global role" from resource-level denials like "Not your
// assigned bug".
func Forbidden(w http.ResponseWriter, message string) {
	Write(w, http.StatusForbidden, message)
}

// NotFound sends 404 with a message naming the missing entity.
func NotFound(w http.ResponseWriter, message string) {
	Write(w, http.StatusNotFound, message)
}

// ErrorLogger logs unexpected failures with request context before
// answering 500. Handlers hold one and call LogServerError wherever an
// operation fails for a reason the client did not cause.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger on the given zap logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs the failure and sends 500 carrying the underlying
// error message, matching the original service's uniform behavior.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	e.log.Error(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	Write(w, http.StatusInternalServerError, err.Error())
}
