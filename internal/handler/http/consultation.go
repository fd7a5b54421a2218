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

// ConsultationHandler exposes consultation booking endpoints.
type ConsultationHandler struct {
	consultations *service.ConsultationService
	logger        *slog.Logger
}

// NewConsultationHandler creates a new consultation handler.
func NewConsultationHandler(consultations *service.ConsultationService, logger *slog.Logger) *ConsultationHandler {
	return &ConsultationHandler{consultations: consultations, logger: logger}
}

// PublicRoutes mounts the public booking endpoint.
func (h *ConsultationHandler) PublicRoutes(r chi.Router) {
	r.Post("/", h.Create)
}

// AdminRoutes mounts the booking management endpoints.
func (h *ConsultationHandler) AdminRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Patch("/{id}/schedule", h.Reschedule)
}

// Create handles POST /consultations.
func (h *ConsultationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateBookingInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	var userID *string
	if id := middleware.UserIDFromContext(r.Context()); id != "" {
		userID = &id
	}

	booking, err := h.consultations.CreateBooking(r.Context(), input, userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: booking})
}

// List handles GET /admin/consultations.
func (h *ConsultationHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.ConsultationFilter{
		Status:   queryString(r, "status"),
		Email:    queryString(r, "email"),
		DateFrom: queryString(r, "date_from"),
		DateTo:   queryString(r, "date_to"),
	}

	result, err := h.consultations.ListBookings(r.Context(), filter, pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// Get handles GET /admin/consultations/{id}.
func (h *ConsultationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	booking, err := h.consultations.GetBooking(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: booking})
}

// UpdateStatus handles PATCH /admin/consultations/{id}/status.
func (h *ConsultationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var input service.UpdateBookingStatusInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	booking, err := h.consultations.UpdateStatus(r.Context(), id.String(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: booking})
}

// Reschedule handles PATCH /admin/consultations/{id}/schedule.
func (h *ConsultationHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var input service.RescheduleBookingInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	booking, err := h.consultations.Reschedule(r.Context(), id.String(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: booking})
}
