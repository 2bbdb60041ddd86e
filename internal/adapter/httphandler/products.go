package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/soukhub/marketplace/internal/core/domain"
	"github.com/soukhub/marketplace/internal/core/port"
)

// POST v1/products JSON aggregate payload (201 Created, 400, 409)
// PATCH v1/products/{id} JSON partial payload (200 OK, 400, 404, 409)

type ProductsHandler struct {
	writer port.ProductWriter
}

func RegisterProducts(mux *http.ServeMux, writer port.ProductWriter) {
	h := ProductsHandler{writer}
	mux.HandleFunc("POST /v1/products", h.PostProduct)
	mux.HandleFunc("PATCH /v1/products/{id}", h.PatchProduct)
}

func (h ProductsHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PostProduct"
	log := slog.With("op", op)

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	fields, variants := req.toDomain()
	product, err := h.writer.CreateProduct(r.Context(), fields, variants)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusCreated, toProductResponse(product))
	log.Info("product created", "productID", product.ID, "slug", product.Slug)
}

func (h ProductsHandler) PatchProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PatchProduct"
	log := slog.With("op", op)

	productID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var req PatchProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	patch, variants := req.toDomain()
	product, err := h.writer.UpdateProduct(r.Context(), productID, patch, variants)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, toProductResponse(product))
	log.Info("product updated", "productID", product.ID)
}

func writeDomainError(w http.ResponseWriter, log *slog.Logger, err error) {
	var (
		fieldErr     *domain.FieldError
		invariantErr *domain.InvariantError
		ownershipErr *domain.OwnershipError
	)
	switch {
	case errors.As(err, &fieldErr):
		http.Error(w, fieldErr.Error(), http.StatusBadRequest)
	case errors.As(err, &invariantErr):
		http.Error(w, invariantErr.Message, http.StatusBadRequest)
	case errors.As(err, &ownershipErr):
		http.Error(w, ownershipErr.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrConflict):
		http.Error(w, "conflict, please retry", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
		log.Error("unexpected error", "err", err)
		return
	}
	log.Warn("request rejected", "err", err)
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}
