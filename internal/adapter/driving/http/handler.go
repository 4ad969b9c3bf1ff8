package httphandler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/portpanel/internal/application"
)

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	accounts *application.AccountService
	ports    *application.PortService
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	accounts *application.AccountService,
	ports *application.PortService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		accounts: accounts,
		ports:    ports,
		logger:   logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
//
// Protected routes take the bearer token from the "token" query parameter.
// Single-user routes exist both as /users?username=... and /users/{username}.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", h.CreateUser)
	mux.HandleFunc("GET /users", h.ListUsers)
	mux.HandleFunc("PUT /users", h.withToken(h.UpdateUser))
	mux.HandleFunc("DELETE /users", h.withToken(h.DeleteUser))
	mux.HandleFunc("GET /users/{username}", h.withToken(h.GetUser))
	mux.HandleFunc("PUT /users/{username}", h.withToken(h.UpdateUser))
	mux.HandleFunc("DELETE /users/{username}", h.withToken(h.DeleteUser))

	mux.HandleFunc("POST /authenticate", h.Authenticate)
	mux.HandleFunc("GET /authenticate", h.withToken(h.GetCurrentUser))
	mux.HandleFunc("PUT /authenticate", h.withToken(h.UpdateCurrentUser))
	mux.HandleFunc("DELETE /authenticate", h.withToken(h.DeleteCurrentUser))

	mux.HandleFunc("GET /orders", h.withToken(h.ListPorts))
	mux.HandleFunc("POST /orders", h.withToken(h.CreatePort))
	mux.HandleFunc("PUT /orders/{port_number}", h.withToken(h.UpdatePort))
	mux.HandleFunc("DELETE /orders/{port_number}", h.withToken(h.DeletePort))

	mux.HandleFunc("GET /health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
