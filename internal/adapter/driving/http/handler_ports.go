package httphandler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ericfisherdev/portpanel/internal/domain/model"
)

// ListPorts returns every port definition.
func (h *Handler) ListPorts(w http.ResponseWriter, r *http.Request, _ string) {
	ports, err := h.ports.List(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "list ports")
		return
	}

	resp := make([]PortResponse, 0, len(ports))
	for _, p := range ports {
		resp = append(resp, toPortResponse(p))
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreatePort adds a port definition.
func (h *Handler) CreatePort(w http.ResponseWriter, r *http.Request, subject string) {
	req, ok := decodePortRequest(w, r, true)
	if !ok {
		return
	}

	port, err := h.ports.Create(r.Context(), *req.Name, *req.PortNumber, model.Protocol(*req.Protocol))
	if err != nil {
		h.writeServiceError(w, err, "create port")
		return
	}

	h.logger.Info("port created", "port_number", port.Number, "by", subject)
	writeJSON(w, http.StatusOK, toPortResponse(port))
}

// UpdatePort changes the name and protocol of the port in the path. A
// port_number in the body is ignored.
func (h *Handler) UpdatePort(w http.ResponseWriter, r *http.Request, subject string) {
	number, ok := portNumber(w, r)
	if !ok {
		return
	}

	req, ok := decodePortRequest(w, r, false)
	if !ok {
		return
	}

	port, err := h.ports.Update(r.Context(), number, *req.Name, model.Protocol(*req.Protocol))
	if err != nil {
		h.writeServiceError(w, err, "update port")
		return
	}

	h.logger.Info("port updated", "port_number", number, "by", subject)
	writeJSON(w, http.StatusOK, toPortResponse(port))
}

// DeletePort removes the port in the path.
func (h *Handler) DeletePort(w http.ResponseWriter, r *http.Request, subject string) {
	number, ok := portNumber(w, r)
	if !ok {
		return
	}

	if err := h.ports.Delete(r.Context(), number); err != nil {
		h.writeServiceError(w, err, "delete port")
		return
	}

	h.logger.Info("port deleted", "port_number", number, "by", subject)
	writeJSON(w, http.StatusOK, DetailResponse{Detail: fmt.Sprintf("Port %d has been deleted", number)})
}

func portNumber(w http.ResponseWriter, r *http.Request) (int, bool) {
	number, err := strconv.Atoi(r.PathValue("port_number"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid port number")
		return 0, false
	}
	return number, true
}
