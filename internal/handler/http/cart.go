package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	"github.com/Tazdar-Rahim/artmuse-server/internal/service"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/httputil"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/validator"
)

// CartHandler exposes the session cart endpoints.
type CartHandler struct {
	carts  *service.CartService
	logger *slog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: logger}
}

// Routes mounts the cart endpoints. All of them require a session header.
func (h *CartHandler) Routes(r chi.Router) {
	r.Use(RequireSession)
	r.Get("/", h.Get)
	r.Post("/items", h.AddItem)
	r.Patch("/items/{artworkID}", h.UpdateQuantity)
	r.Delete("/items/{artworkID}", h.RemoveItem)
	r.Delete("/", h.Clear)
}

type addCartItemRequest struct {
	ArtworkID string `json:"artwork_id" validate:"required,uuid"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// cartResponse adds the computed totals to the stored cart shape.
type cartResponse struct {
	SessionID   string            `json:"session_id"`
	Lines       []domain.CartLine `json:"lines"`
	TotalAmount int64             `json:"total_amount"`
	ItemCount   int               `json:"item_count"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Get handles GET /cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.GetCart(r.Context(), SessionFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeCart(w, http.StatusOK, cart)
}

// AddItem handles POST /cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.carts.AddItem(r.Context(), SessionFromContext(r.Context()), req.ArtworkID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeCart(w, http.StatusOK, cart)
}

// UpdateQuantity handles PATCH /cart/items/{artworkID}.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "artworkID"))
	if !ok {
		return
	}

	var req updateCartItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.carts.UpdateQuantity(r.Context(), SessionFromContext(r.Context()), id.String(), req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeCart(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /cart/items/{artworkID}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "artworkID"))
	if !ok {
		return
	}

	cart, err := h.carts.RemoveItem(r.Context(), SessionFromContext(r.Context()), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeCart(w, http.StatusOK, cart)
}

// Clear handles DELETE /cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context(), SessionFromContext(r.Context())); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) writeCart(w http.ResponseWriter, status int, cart *domain.Cart) {
	httputil.WriteJSON(w, status, httputil.Response{Data: cartResponse{
		SessionID:   cart.SessionID,
		Lines:       cart.Lines,
		TotalAmount: cart.TotalAmount(),
		ItemCount:   cart.ItemCount(),
		UpdatedAt:   cart.UpdatedAt,
	}})
}
