package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tazdar-Rahim/artmuse-server/internal/service"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/httputil"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/middleware"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/pagination"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/validator"
)

// WishlistHandler exposes the wishlist endpoints. The router mounts these
// behind the auth middleware, so an anonymous request never gets here.
type WishlistHandler struct {
	wishlists *service.WishlistService
	logger    *slog.Logger
}

// NewWishlistHandler creates a new wishlist handler.
func NewWishlistHandler(wishlists *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{wishlists: wishlists, logger: logger}
}

// Routes mounts the wishlist endpoints.
func (h *WishlistHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Add)
	r.Get("/{artworkID}", h.Contains)
	r.Delete("/{artworkID}", h.Remove)
}

type addWishlistRequest struct {
	ArtworkID string `json:"artwork_id" validate:"required,uuid"`
}

// List handles GET /wishlist.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	result, err := h.wishlists.List(r.Context(), userID, pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// Add handles POST /wishlist. A fresh entry answers 201; re-adding an
// artwork already on the list writes nothing and answers 200 with
// already_present set, so the client can tell the customer.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addWishlistRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	added, err := h.wishlists.Add(r.Context(), userID, req.ArtworkID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	status := http.StatusCreated
	if !added {
		status = http.StatusOK
	}
	httputil.WriteJSON(w, status, httputil.Response{Data: map[string]bool{
		"already_present": !added,
	}})
}

// Contains handles GET /wishlist/{artworkID}.
func (h *WishlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "artworkID"))
	if !ok {
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	exists, err := h.wishlists.Contains(r.Context(), userID, id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]bool{"in_wishlist": exists}})
}

// Remove handles DELETE /wishlist/{artworkID}.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "artworkID"))
	if !ok {
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	if err := h.wishlists.Remove(r.Context(), userID, id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
