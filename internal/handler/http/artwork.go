package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Tazdar-Rahim/artmuse-server/internal/service"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/httputil"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/pagination"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/validator"
)

// ArtworkHandler exposes the catalog endpoints. Public routes only surface
// available pieces; the admin routes see everything.
type ArtworkHandler struct {
	artworks *service.ArtworkService
	logger   *slog.Logger
}

// NewArtworkHandler creates a new artwork handler.
func NewArtworkHandler(artworks *service.ArtworkService, logger *slog.Logger) *ArtworkHandler {
	return &ArtworkHandler{artworks: artworks, logger: logger}
}

// PublicRoutes mounts the public catalog endpoints.
func (h *ArtworkHandler) PublicRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Get("/slug/{slug}", h.GetBySlug)
}

// AdminRoutes mounts the catalog management endpoints.
func (h *ArtworkHandler) AdminRoutes(r chi.Router) {
	r.Get("/", h.AdminList)
	r.Post("/", h.Create)
	r.Get("/{id}", h.AdminGet)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// List handles GET /artwork.
func (h *ArtworkHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// AdminList handles GET /admin/artwork.
func (h *ArtworkHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *ArtworkHandler) list(w http.ResponseWriter, r *http.Request, includeUnavailable bool) {
	input := service.ListArtworkInput{
		Search:     queryString(r, "search"),
		Category:   queryString(r, "category"),
		Medium:     queryString(r, "medium"),
		Style:      queryString(r, "style"),
		MinPrice:   queryInt64(r, "min_price"),
		MaxPrice:   queryInt64(r, "max_price"),
		IsFeatured: queryBool(r, "featured"),
		Pagination: pagination.FromRequest(r),
	}
	if includeUnavailable {
		input.IsAvailable = queryBool(r, "available")
	}

	result, err := h.artworks.List(r.Context(), input, includeUnavailable)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// Get handles GET /artwork/{id}.
func (h *ArtworkHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, false)
}

// AdminGet handles GET /admin/artwork/{id}.
func (h *ArtworkHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, true)
}

func (h *ArtworkHandler) get(w http.ResponseWriter, r *http.Request, includeUnavailable bool) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	artwork, err := h.artworks.GetByID(r.Context(), id.String(), includeUnavailable)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: artwork})
}

// GetBySlug handles GET /artwork/slug/{slug}.
func (h *ArtworkHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	artwork, err := h.artworks.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: artwork})
}

// Create handles POST /admin/artwork.
func (h *ArtworkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateArtworkInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	artwork, err := h.artworks.Create(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: artwork})
}

// Update handles PATCH /admin/artwork/{id}.
func (h *ArtworkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var input service.UpdateArtworkInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	artwork, err := h.artworks.Update(r.Context(), id.String(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: artwork})
}

// Delete handles DELETE /admin/artwork/{id}.
func (h *ArtworkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.artworks.Delete(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Query parameter helpers shared by the list endpoints.

func queryString(r *http.Request, name string) *string {
	if v := r.URL.Query().Get(name); v != "" {
		return &v
	}
	return nil
}

func queryInt64(r *http.Request, name string) *int64 {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return &n
		}
	}
	return nil
}

func queryBool(r *http.Request, name string) *bool {
	if v := r.URL.Query().Get(name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return &b
		}
	}
	return nil
}
