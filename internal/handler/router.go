package handler

import (
	"net/http"

	"github.com/bkaya/campus-market/internal/config"
	"github.com/bkaya/campus-market/internal/middleware"
	"github.com/gorilla/mux"
)

// NewRouter wires all routes. Read routes are public; product mutations sit
// behind the bearer-token middleware.
func NewRouter(h *Handler, cfg *config.Config) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/products", h.ListProducts).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", h.GetProduct).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// Protected routes
	authRouter := r.PathPrefix("/products").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("", h.CreateProduct).Methods(http.MethodPost)
	authRouter.HandleFunc("/{id}", h.UpdateProduct).Methods(http.MethodPut)
	authRouter.HandleFunc("/{id}", h.DeleteProduct).Methods(http.MethodDelete)

	return r
}

// Health reports whether the database is reachable
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{"ok": false, "db": err.Error()})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}
