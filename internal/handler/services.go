package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rusba/rusba-api/internal/model"
	"github.com/rusba/rusba-api/internal/service"
)

// ServiceHandler serves the /services CRUD endpoints. GET is public; create,
// update, and delete sit behind the auth middleware (wired in server.go).
type ServiceHandler struct {
	content *service.ContentService
	logger  *slog.Logger
}

// NewServiceHandler creates a ServiceHandler.
func NewServiceHandler(content *service.ContentService, logger *slog.Logger) *ServiceHandler {
	return &ServiceHandler{content: content, logger: logger}
}

// HandleList processes GET /services. Public.
func (h *ServiceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	services, err := h.content.ListServices(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "Error fetching services")
		return
	}
	writeJSON(w, http.StatusOK, services)
}

// HandleCreate processes POST /services.
// 201 with the stored record (including its new id), or 400 when a required
// field is missing.
func (h *ServiceHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var svc model.Service
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid JSON body"})
		return
	}
	svc.ID = 0 // the store assigns ids; ignore any client-sent value

	if err := h.content.CreateService(r.Context(), &svc); err != nil {
		writeError(w, h.logger, err, "Error creating service")
		return
	}

	writeJSON(w, http.StatusCreated, svc)
}

// HandleUpdate processes PUT /services/{id}.
// Fields absent from the body keep their stored values; 404 when the id
// matches no row.
func (h *ServiceHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var patch model.ServicePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid JSON body"})
		return
	}

	updated, err := h.content.UpdateService(r.Context(), id, patch)
	if err != nil {
		writeError(w, h.logger, err, "Error updating service")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete processes DELETE /services/{id}. 204 on success, 404 when the
// id matches no row.
func (h *ServiceHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.content.DeleteService(r.Context(), id); err != nil {
		writeError(w, h.logger, err, "Error deleting service")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} route parameter. On a non-numeric id it writes the
// 400 itself and returns ok=false, so handlers can just bail out.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid id"})
		return 0, false
	}
	return id, true
}
