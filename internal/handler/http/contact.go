package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tazdar-Rahim/artmuse-server/internal/service"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/httputil"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/validator"
)

// ContactHandler exposes the public contact form endpoint.
type ContactHandler struct {
	emails *service.EmailService
	logger *slog.Logger
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(emails *service.EmailService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{emails: emails, logger: logger}
}

// PublicRoutes mounts the contact endpoint.
func (h *ContactHandler) PublicRoutes(r chi.Router) {
	r.Post("/", h.Submit)
}

// Submit handles POST /contact. The submitter always gets a 202: the
// automatic reply is queued into the usual dispatch flow and its delivery
// outcome lands in the email log.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input service.ContactInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.emails.SubmitContact(r.Context(), input); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusAccepted, httputil.Response{Data: map[string]string{
		"status": "received",
	}})
}
