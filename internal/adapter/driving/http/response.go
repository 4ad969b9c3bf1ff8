package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/portpanel/internal/domain/model"
)

// maxBodyBytes caps request bodies; every payload here is a few fields.
const maxBodyBytes = 1 << 20

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, DetailResponse{Detail: message})
}

// decodeJSON reads the request body into v. On failure a 400 is written and
// false returned.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// DetailResponse is the body of error responses and deletion confirmations.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is the JSON body of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// UserRequest is the JSON body for creating, replacing, and authenticating
// users. Both fields must be present; empty strings are allowed.
type UserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func (req UserRequest) toResponse() UserResponse {
	return UserResponse{Username: *req.Username, Password: *req.Password}
}

// UserResponse is a full user record.
type UserResponse struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserSummaryResponse exposes only the username.
type UserSummaryResponse struct {
	Username string `json:"username"`
}

// AuthResponse carries an issued access token.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// PortRequest is the JSON body for creating and updating ports.
type PortRequest struct {
	Name       *string `json:"name"`
	PortNumber *int    `json:"port_number"`
	Protocol   *string `json:"protocol"`
}

// PortResponse is the JSON representation of a port definition.
type PortResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PortNumber int    `json:"port_number"`
	Protocol   string `json:"protocol"`
}

func toPortResponse(p model.Port) PortResponse {
	return PortResponse{
		ID:         p.ID,
		Name:       p.Name,
		PortNumber: p.Number,
		Protocol:   string(p.Protocol),
	}
}

func decodeUserRequest(w http.ResponseWriter, r *http.Request) (UserRequest, bool) {
	var req UserRequest
	if !decodeJSON(w, r, &req) {
		return req, false
	}
	if req.Username == nil || req.Password == nil {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return req, false
	}
	return req, true
}

// decodePortRequest requires name and protocol, and port_number only when
// requireNumber is set.
func decodePortRequest(w http.ResponseWriter, r *http.Request, requireNumber bool) (PortRequest, bool) {
	var req PortRequest
	if !decodeJSON(w, r, &req) {
		return req, false
	}
	if req.Name == nil || req.Protocol == nil || (requireNumber && req.PortNumber == nil) {
		writeError(w, http.StatusBadRequest, "name, port_number and protocol are required")
		return req, false
	}
	return req, true
}
