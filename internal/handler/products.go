package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rusba/rusba-api/internal/model"
	"github.com/rusba/rusba-api/internal/service"
)

// ProductHandler serves the /products CRUD endpoints. Same shape as
// ServiceHandler — see services.go for the per-endpoint semantics.
type ProductHandler struct {
	content *service.ContentService
	logger  *slog.Logger
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(content *service.ContentService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{content: content, logger: logger}
}

// HandleList processes GET /products. Public.
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.content.ListProducts(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "Error fetching products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// HandleCreate processes POST /products.
func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid JSON body"})
		return
	}
	p.ID = 0

	if err := h.content.CreateProduct(r.Context(), &p); err != nil {
		writeError(w, h.logger, err, "Error creating product")
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// HandleUpdate processes PUT /products/{id}.
func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var patch model.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid JSON body"})
		return
	}

	updated, err := h.content.UpdateProduct(r.Context(), id, patch)
	if err != nil {
		writeError(w, h.logger, err, "Error updating product")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete processes DELETE /products/{id}.
func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.content.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, h.logger, err, "Error deleting product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
