package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	"github.com/Tazdar-Rahim/artmuse-server/internal/service"
	apperrors "github.com/Tazdar-Rahim/artmuse-server/pkg/errors"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/httputil"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/middleware"
)

// MediaHandler exposes image upload endpoints. The public route accepts
// payment proof and commission reference uploads; artwork photos are
// admin-only.
type MediaHandler struct {
	media  *service.MediaService
	logger *slog.Logger
}

// NewMediaHandler creates a new media handler.
func NewMediaHandler(media *service.MediaService, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{media: media, logger: logger}
}

// PublicRoutes mounts the customer-facing upload endpoint.
func (h *MediaHandler) PublicRoutes(r chi.Router) {
	r.Post("/", h.Upload)
}

// AdminRoutes mounts the media management endpoints.
func (h *MediaHandler) AdminRoutes(r chi.Router) {
	r.Post("/", h.AdminUpload)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)
}

// Upload handles POST /media. Customers can only upload payment proofs and
// commission references.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind == domain.MediaKindArtwork {
		httputil.WriteError(w, r, apperrors.Forbidden("artwork uploads are admin only"), h.logger)
		return
	}

	h.upload(w, r, kind)
}

// AdminUpload handles POST /admin/media for any media kind.
func (h *MediaHandler) AdminUpload(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, r.URL.Query().Get("kind"))
}

func (h *MediaHandler) upload(w http.ResponseWriter, r *http.Request, kind string) {
	if err := r.ParseMultipartForm(domain.MaxFileSize); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid multipart form"},
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "the file field is required"},
		})
		return
	}
	defer file.Close()

	var uploadedBy *string
	if id := middleware.UserIDFromContext(r.Context()); id != "" {
		uploadedBy = &id
	}

	result, err := h.media.Upload(r.Context(), service.UploadInput{
		Kind:         kind,
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Size:         header.Size,
		Data:         file,
		UploadedBy:   uploadedBy,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: result})
}

// Get handles GET /admin/media/{id}.
func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	file, err := h.media.Get(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: file})
}

// Delete handles DELETE /admin/media/{id}.
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.media.Delete(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
