package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rusba/rusba-api/internal/model"
	"github.com/rusba/rusba-api/internal/service"
)

// ClientHandler serves the /clients CRUD endpoints. Same shape as
// ServiceHandler — see services.go for the per-endpoint semantics.
type ClientHandler struct {
	content *service.ContentService
	logger  *slog.Logger
}

// NewClientHandler creates a ClientHandler.
func NewClientHandler(content *service.ContentService, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{content: content, logger: logger}
}

// HandleList processes GET /clients. Public.
func (h *ClientHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	clients, err := h.content.ListClients(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "Error fetching clients")
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

// HandleCreate processes POST /clients.
func (h *ClientHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var c model.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid JSON body"})
		return
	}
	c.ID = 0

	if err := h.content.CreateClient(r.Context(), &c); err != nil {
		writeError(w, h.logger, err, "Error creating client")
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

// HandleUpdate processes PUT /clients/{id}.
func (h *ClientHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var patch model.ClientPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid JSON body"})
		return
	}

	updated, err := h.content.UpdateClient(r.Context(), id, patch)
	if err != nil {
		writeError(w, h.logger, err, "Error updating client")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete processes DELETE /clients/{id}.
func (h *ClientHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.content.DeleteClient(r.Context(), id); err != nil {
		writeError(w, h.logger, err, "Error deleting client")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
