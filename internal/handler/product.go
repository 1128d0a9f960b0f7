package handler

import (
	"net/http"
	"strconv"

	"github.com/bkaya/campus-market/internal/middleware"
	"github.com/bkaya/campus-market/internal/service"
	"github.com/gorilla/mux"
)

type productRequest struct {
	Title       string   `json:"title"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	CategoryID  int64    `json:"category_id"`
}

func (req *productRequest) input() service.ProductInput {
	return service.ProductInput{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	}
}

func productID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// ListProducts returns the whole catalog, newest-first
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts()
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// GetProduct returns one enriched listing
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, service.ErrNotFound.Error())
		return
	}

	product, err := h.svc.GetProduct(id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// CreateProduct creates a listing owned by the authenticated caller
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.Identity(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.svc.CreateProduct(ident, req.input())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

// UpdateProduct rewrites a listing if the caller owns it
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.Identity(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	id, err := productID(r)
	if err != nil {
		respondError(w, http.StatusForbidden, service.ErrNotOwner.Error())
		return
	}

	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.svc.UpdateProduct(ident, id, req.input())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// DeleteProduct removes a listing if the caller owns it
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.Identity(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	id, err := productID(r)
	if err != nil {
		respondError(w, http.StatusForbidden, service.ErrNotOwner.Error())
		return
	}

	product, err := h.svc.DeleteProduct(ident, id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}
