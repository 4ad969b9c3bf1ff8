package httphandler

import (
	"net/http"
	"strings"
)

// tokenQueryParam is the query parameter carrying the bearer token.
const tokenQueryParam = "token"

// authorizedHandler is a handler that runs after token verification with the
// username the token was issued to.
type authorizedHandler func(w http.ResponseWriter, r *http.Request, subject string)

// withToken verifies the request token before calling next. Each request is
// checked on its own; nothing about the caller is remembered between requests.
func (h *Handler) withToken(next authorizedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject, err := h.accounts.Authorize(requestToken(r))
		if err != nil {
			h.writeServiceError(w, err, "authorize request")
			return
		}
		next(w, r, subject)
	}
}

// requestToken returns the token from the query string, falling back to an
// "Authorization: Bearer" header.
func requestToken(r *http.Request) string {
	if token := r.URL.Query().Get(tokenQueryParam); token != "" {
		return token
	}
	return bearerToken(r.Header.Get("Authorization"))
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
