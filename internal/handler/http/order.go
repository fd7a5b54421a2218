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

// OrderHandler exposes checkout, order tracking, and the manual payment
// confirmation flow.
type OrderHandler struct {
	orders *service.OrderService
	logger *slog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

// PublicRoutes mounts the storefront order endpoints. Checkout needs a
// session header; tracking and payment submission work off the order ID.
func (h *OrderHandler) PublicRoutes(r chi.Router) {
	r.With(RequireSession).Post("/", h.Checkout)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/payment", h.SubmitPayment)
}

// UserRoutes mounts the signed-in order history endpoint.
func (h *OrderHandler) UserRoutes(r chi.Router) {
	r.Get("/", h.MyOrders)
}

// AdminRoutes mounts the order management endpoints.
func (h *OrderHandler) AdminRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)
}

type submitPaymentRequest struct {
	PaymentProofURL string `json:"payment_proof_url" validate:"required,url"`
}

// Checkout handles POST /orders.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var input service.CheckoutInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	var userID *string
	if id := middleware.UserIDFromContext(r.Context()); id != "" {
		userID = &id
	}

	order, err := h.orders.Checkout(r.Context(), SessionFromContext(r.Context()), input, userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// SubmitPayment handles POST /orders/{id}/payment.
func (h *OrderHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req submitPaymentRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.SubmitPaymentProof(r.Context(), id.String(), req.PaymentProofURL)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// MyOrders handles GET /account/orders for the signed-in user.
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	filter := repository.OrderFilter{
		UserID: &userID,
		Status: queryString(r, "status"),
	}

	result, err := h.orders.ListOrders(r.Context(), filter, pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// List handles GET /admin/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.OrderFilter{
		Status:        queryString(r, "status"),
		PaymentStatus: queryString(r, "payment_status"),
		Email:         queryString(r, "email"),
	}

	result, err := h.orders.ListOrders(r.Context(), filter, pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// UpdateStatus handles PATCH /admin/orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var input service.UpdateOrderStatusInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), id.String(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}
