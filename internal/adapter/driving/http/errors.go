package httphandler

import (
	"errors"
	"net/http"

	"github.com/ericfisherdev/portpanel/internal/application"
	"github.com/ericfisherdev/portpanel/internal/domain/port/driven"
)

// errorMapping pairs a domain error with the status and detail it renders as.
type errorMapping struct {
	err    error
	status int
	detail string
}

// errorMappings is checked in order with errors.Is.
var errorMappings = []errorMapping{
	{driven.ErrUserAlreadyExists, http.StatusBadRequest, "Username already exists"},
	{driven.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{driven.ErrPortAlreadyExists, http.StatusBadRequest, "Port already exists"},
	{driven.ErrPortNotFound, http.StatusNotFound, "Port not found"},
	{application.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{application.ErrTokenExpired, http.StatusUnauthorized, "Token has expired"},
	{application.ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
}

// statusForError returns the status code and detail for err. Unmapped errors
// become a generic 500.
func statusForError(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.detail
		}
	}
	return http.StatusInternalServerError, "internal server error"
}

// writeServiceError renders err as a JSON error body. Only unmapped errors
// are logged; the rest are ordinary client outcomes.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, op string) {
	status, detail := statusForError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("failed to "+op, "error", err)
	}
	writeError(w, status, detail)
}
