package httphandler

import (
	"net/http"
)

// Authenticate exchanges a username and password for a bearer token.
func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeUserRequest(w, r)
	if !ok {
		return
	}

	tok, err := h.accounts.Authenticate(r.Context(), *req.Username, *req.Password)
	if err != nil {
		h.writeServiceError(w, err, "authenticate")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{AccessToken: tok.Token, TokenType: tok.Type})
}

// GetCurrentUser returns the account the token was issued to. The account may
// have been deleted since, in which case the lookup fails with 404.
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request, subject string) {
	user, err := h.accounts.Get(r.Context(), subject)
	if err != nil {
		h.writeServiceError(w, err, "get current user")
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{Username: user.Username, Password: user.Password})
}

// UpdateCurrentUser replaces the account the token was issued to.
func (h *Handler) UpdateCurrentUser(w http.ResponseWriter, r *http.Request, subject string) {
	h.replaceUser(w, r, subject)
}

// DeleteCurrentUser removes the account the token was issued to. The token
// itself stays valid until it expires.
func (h *Handler) DeleteCurrentUser(w http.ResponseWriter, r *http.Request, subject string) {
	h.deleteUser(w, r, subject)
}
