package httphandler

import (
	"fmt"
	"net/http"
)

// CreateUser registers a new account.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeUserRequest(w, r)
	if !ok {
		return
	}

	if err := h.accounts.Register(r.Context(), *req.Username, *req.Password); err != nil {
		h.writeServiceError(w, err, "create user")
		return
	}

	writeJSON(w, http.StatusOK, req.toResponse())
}

// ListUsers returns every username. When a username query parameter is
// present the request is treated as a single-user lookup instead, which
// requires a token.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has("username") {
		h.withToken(h.GetUser)(w, r)
		return
	}

	names, err := h.accounts.ListUsernames(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "list users")
		return
	}

	resp := make([]UserSummaryResponse, 0, len(names))
	for _, name := range names {
		resp = append(resp, UserSummaryResponse{Username: name})
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetUser returns the username stored under the requested key.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request, _ string) {
	key, ok := userKey(w, r)
	if !ok {
		return
	}

	user, err := h.accounts.Get(r.Context(), key)
	if err != nil {
		h.writeServiceError(w, err, "get user")
		return
	}

	writeJSON(w, http.StatusOK, UserSummaryResponse{Username: user.Username})
}

// UpdateUser replaces the account stored under the requested key.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request, _ string) {
	key, ok := userKey(w, r)
	if !ok {
		return
	}
	h.replaceUser(w, r, key)
}

// DeleteUser removes the account stored under the requested key.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request, _ string) {
	key, ok := userKey(w, r)
	if !ok {
		return
	}
	h.deleteUser(w, r, key)
}

func (h *Handler) replaceUser(w http.ResponseWriter, r *http.Request, key string) {
	req, ok := decodeUserRequest(w, r)
	if !ok {
		return
	}

	if err := h.accounts.Replace(r.Context(), key, *req.Username, *req.Password); err != nil {
		h.writeServiceError(w, err, "update user")
		return
	}

	writeJSON(w, http.StatusOK, req.toResponse())
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request, key string) {
	if err := h.accounts.Delete(r.Context(), key); err != nil {
		h.writeServiceError(w, err, "delete user")
		return
	}

	writeJSON(w, http.StatusOK, DetailResponse{Detail: fmt.Sprintf("User %s has been deleted", key)})
}

// userKey reads the target username from the path or the query string.
func userKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	if key := r.PathValue("username"); key != "" {
		return key, true
	}
	if key := r.URL.Query().Get("username"); key != "" {
		return key, true
	}
	writeError(w, http.StatusBadRequest, "username is required")
	return "", false
}
