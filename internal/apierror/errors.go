// Package apierror defines errors that carry a client-facing status and message.
package apierror

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// APIError is an error whose message is safe to return to clients.
type APIError struct {
	HTTPCode int
	Message  string
}

func (e *APIError) Error() string {
	return e.Message
}

func newErr(code int, format string, args ...any) *APIError {
	return &APIError{HTTPCode: code, Message: fmt.Sprintf(format, args...)}
}

// NewErrValidation reports a missing or malformed field.
func NewErrValidation(message string) *APIError {
	return newErr(http.StatusBadRequest, "%s", message)
}

// NewErrEmailIsTaken reports a duplicate email on registration.
func NewErrEmailIsTaken() *APIError {
	return newErr(http.StatusBadRequest, "email is already in use")
}

// NewErrUserNotFound reports an unknown user.
func NewErrUserNotFound(id uuid.UUID) *APIError {
	return newErr(http.StatusNotFound, "user %s not found", id)
}

// NewErrCoverLetterNotFound reports an unknown cover letter.
func NewErrCoverLetterNotFound(id uuid.UUID) *APIError {
	return newErr(http.StatusNotFound, "cover letter %s not found", id)
}

// NewErrSessionNotFound reports an unknown interview session.
func NewErrSessionNotFound(id uuid.UUID) *APIError {
	return newErr(http.StatusNotFound, "interview session %s not found", id)
}

// NewErrTurnNotFound reports an unknown turn or a turn of another session.
func NewErrTurnNotFound(id uuid.UUID) *APIError {
	return newErr(http.StatusNotFound, "interview turn %s not found", id)
}

// NewErrTurnAlreadyAnswered reports an attempt to answer a turn twice.
func NewErrTurnAlreadyAnswered(id uuid.UUID) *APIError {
	return newErr(http.StatusConflict, "interview turn %s is already answered", id)
}

// NewErrTurnExists reports a concurrent request that already created the turn.
func NewErrTurnExists(sessionID uuid.UUID, number int) *APIError {
	return newErr(http.StatusConflict, "turn %d of interview session %s already exists", number, sessionID)
}

// NewErrInterviewEnded reports an operation on a finished interview.
func NewErrInterviewEnded(id uuid.UUID) *APIError {
	return newErr(http.StatusConflict, "interview session %s has already ended", id)
}

// NewErrGenerationFailed reports a failed completion call on a synchronous path.
func NewErrGenerationFailed() *APIError {
	return newErr(http.StatusInternalServerError, "failed to generate a response, please try again")
}
