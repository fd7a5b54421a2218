package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tazdar-Rahim/artmuse-server/internal/repository"
	"github.com/Tazdar-Rahim/artmuse-server/internal/service"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/httputil"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/middleware"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/pagination"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/validator"
)

// CommissionHandler exposes commission package browsing and request
// submission, plus the admin management endpoints.
type CommissionHandler struct {
	commissions *service.CommissionService
	logger      *slog.Logger
}

// NewCommissionHandler creates a new commission handler.
func NewCommissionHandler(commissions *service.CommissionService, logger *slog.Logger) *CommissionHandler {
	return &CommissionHandler{commissions: commissions, logger: logger}
}

// PublicRoutes mounts the public commission endpoints.
func (h *CommissionHandler) PublicRoutes(r chi.Router) {
	r.Get("/packages", h.ListPackages)
	r.Get("/packages/{id}", h.GetPackage)
	r.Post("/requests", h.CreateRequest)
}

// AdminRoutes mounts the commission management endpoints.
func (h *CommissionHandler) AdminRoutes(r chi.Router) {
	r.Post("/packages", h.CreatePackage)
	r.Get("/packages", h.AdminListPackages)
	r.Get("/packages/{id}", h.AdminGetPackage)
	r.Patch("/packages/{id}", h.UpdatePackage)
	r.Delete("/packages/{id}", h.DeletePackage)
	r.Get("/requests", h.ListRequests)
	r.Get("/requests/{id}", h.GetRequest)
	r.Patch("/requests/{id}/status", h.UpdateRequestStatus)
}

// ListPackages handles GET /commissions/packages.
func (h *CommissionHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	pkgs, err := h.commissions.ListPackages(r.Context(), false)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pkgs})
}

// AdminListPackages handles GET /admin/commissions/packages.
func (h *CommissionHandler) AdminListPackages(w http.ResponseWriter, r *http.Request) {
	pkgs, err := h.commissions.ListPackages(r.Context(), true)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pkgs})
}

// GetPackage handles GET /commissions/packages/{id}.
func (h *CommissionHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	h.getPackage(w, r, false)
}

// AdminGetPackage handles GET /admin/commissions/packages/{id}.
func (h *CommissionHandler) AdminGetPackage(w http.ResponseWriter, r *http.Request) {
	h.getPackage(w, r, true)
}

func (h *CommissionHandler) getPackage(w http.ResponseWriter, r *http.Request, includeInactive bool) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	pkg, err := h.commissions.GetPackage(r.Context(), id.String(), includeInactive)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pkg})
}

// CreatePackage handles POST /admin/commissions/packages.
func (h *CommissionHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var input service.CreatePackageInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	pkg, err := h.commissions.CreatePackage(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: pkg})
}

// UpdatePackage handles PATCH /admin/commissions/packages/{id}.
func (h *CommissionHandler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var input service.UpdatePackageInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	pkg, err := h.commissions.UpdatePackage(r.Context(), id.String(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pkg})
}

// DeletePackage handles DELETE /admin/commissions/packages/{id}.
func (h *CommissionHandler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.commissions.DeletePackage(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateRequest handles POST /commissions/requests. Signed-in customers get
// the request attached to their account.
func (h *CommissionHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var input service.CreateRequestInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	var userID *string
	if id := middleware.UserIDFromContext(r.Context()); id != "" {
		userID = &id
	}

	req, err := h.commissions.CreateRequest(r.Context(), input, userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: req})
}

// ListRequests handles GET /admin/commissions/requests.
func (h *CommissionHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := repository.CommissionRequestFilter{
		Status:    queryString(r, "status"),
		PackageID: queryString(r, "package_id"),
		Email:     queryString(r, "email"),
	}

	result, err := h.commissions.ListRequests(r.Context(), filter, pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// GetRequest handles GET /admin/commissions/requests/{id}.
func (h *CommissionHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	req, err := h.commissions.GetRequest(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: req})
}

// UpdateRequestStatus handles PATCH /admin/commissions/requests/{id}/status.
func (h *CommissionHandler) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var input service.UpdateRequestStatusInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	req, err := h.commissions.UpdateRequestStatus(r.Context(), id.String(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: req})
}
