package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tazdar-Rahim/artmuse-server/internal/repository"
	"github.com/Tazdar-Rahim/artmuse-server/internal/service"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/httputil"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/pagination"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/validator"
)

// EmailHandler exposes the admin endpoints for template overrides and the
// dispatch log.
type EmailHandler struct {
	emails *service.EmailService
	logger *slog.Logger
}

// NewEmailHandler creates a new email handler.
func NewEmailHandler(emails *service.EmailService, logger *slog.Logger) *EmailHandler {
	return &EmailHandler{emails: emails, logger: logger}
}

// AdminRoutes mounts the email management endpoints.
func (h *EmailHandler) AdminRoutes(r chi.Router) {
	r.Get("/templates", h.ListTemplates)
	r.Put("/templates", h.UpsertTemplate)
	r.Delete("/templates/{emailType}", h.DeleteTemplate)
	r.Get("/logs", h.ListLogs)
}

// ListTemplates handles GET /admin/emails/templates.
func (h *EmailHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.emails.ListTemplates(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: templates})
}

// UpsertTemplate handles PUT /admin/emails/templates.
func (h *EmailHandler) UpsertTemplate(w http.ResponseWriter, r *http.Request) {
	var input service.UpsertTemplateInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	tmpl, err := h.emails.UpsertTemplate(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: tmpl})
}

// DeleteTemplate handles DELETE /admin/emails/templates/{emailType}.
func (h *EmailHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.emails.DeleteTemplate(r.Context(), chi.URLParam(r, "emailType")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListLogs handles GET /admin/emails/logs.
func (h *EmailHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	filter := repository.EmailLogFilter{
		EmailType: queryString(r, "email_type"),
		Status:    queryString(r, "status"),
		Recipient: queryString(r, "recipient"),
	}

	result, err := h.emails.ListLogs(r.Context(), filter, pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}
