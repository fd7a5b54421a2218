package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	"github.com/Tazdar-Rahim/artmuse-server/internal/event"
	"github.com/Tazdar-Rahim/artmuse-server/internal/repository"
	apperrors "github.com/Tazdar-Rahim/artmuse-server/pkg/errors"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/pagination"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/validator"
)

// DefaultCurrency is applied to orders when the cart carries no currency of
// its own.
const DefaultCurrency = "USD"

// OrderService implements checkout and order management. Payment is a manual
// flow: the customer uploads a transfer screenshot and an admin confirms it.
type OrderService struct {
	orders   repository.OrderRepository
	carts    repository.CartRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		carts:    carts,
		producer: producer,
		logger:   logger,
	}
}

// CheckoutInput is the input for creating an order from a session cart.
type CheckoutInput struct {
	CustomerName    string         `json:"customer_name" validate:"required,min=1,max=200"`
	CustomerEmail   string         `json:"customer_email" validate:"required,email"`
	CustomerPhone   string         `json:"customer_phone" validate:"max=50"`
	ShippingAddress domain.Address `json:"shipping_address" validate:"required"`
	Notes           string         `json:"notes" validate:"max=2000"`
}

// UpdateOrderStatusInput is the admin input for changing order status.
type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// Checkout turns the session cart into an order. The order and its items
// are written in one transaction; the cart is cleared afterwards, and a
// failure to clear it never fails the checkout.
func (s *OrderService) Checkout(ctx context.Context, sessionID string, input CheckoutInput, userID *string) (*domain.Order, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if err := validator.Validate(input); err != nil {
		return nil, err
	}
	if err := validateAddress(input.ShippingAddress); err != nil {
		return nil, err
	}

	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get cart for checkout: %w", err)
	}
	if len(cart.Lines) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	orderID := uuid.NewString()
	items := make([]domain.OrderItem, len(cart.Lines))
	for i, line := range cart.Lines {
		items[i] = domain.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   orderID,
			ArtworkID: line.ArtworkID,
			Title:     line.Title,
			Price:     line.Price,
			Quantity:  line.Quantity,
		}
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:              orderID,
		UserID:          userID,
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		ShippingAddress: input.ShippingAddress,
		Status:          domain.OrderStatusPending,
		PaymentStatus:   domain.PaymentStatusPending,
		Items:           items,
		TotalAmount:     cart.TotalAmount(),
		Currency:        DefaultCurrency,
		Notes:           input.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order created event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	// The order exists either way; a stale cart is only a nuisance.
	if err := s.carts.Delete(ctx, sessionID); err != nil {
		s.logger.WarnContext(ctx, "failed to clear cart after checkout",
			slog.String("session_id", sessionID),
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID),
		slog.Int64("total_amount", order.TotalAmount),
		slog.Int("item_count", len(order.Items)),
	)

	return order, nil
}

// GetOrder retrieves an order with its items.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// ListOrders returns orders matching the filter, newest first.
func (s *OrderService) ListOrders(ctx context.Context, filter repository.OrderFilter, params pagination.Params) (*pagination.Result[domain.Order], error) {
	if filter.Status != nil && !domain.IsValidOrderStatus(*filter.Status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid status %q", *filter.Status))
	}

	filter.Page = params.Page
	filter.PerPage = params.PerPage

	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	result := pagination.NewResult(orders, total, params)
	return &result, nil
}

// SubmitPaymentProof attaches a payment screenshot to a pending order,
// marks it paid, and moves it to processing. Submitting proof for an order
// that is already paid or past pending is a conflict.
func (s *OrderService) SubmitPaymentProof(ctx context.Context, orderID, proofURL string) (*domain.Order, error) {
	if proofURL == "" {
		return nil, apperrors.InvalidInput("payment proof url is required")
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order for payment: %w", err)
	}

	if order.PaymentStatus == domain.PaymentStatusPaid {
		return nil, apperrors.Conflict("order is already paid")
	}
	if order.Status != domain.OrderStatusPending {
		return nil, apperrors.Conflict(fmt.Sprintf("cannot submit payment for a %s order", order.Status))
	}

	if err := s.orders.ConfirmPayment(ctx, orderID, proofURL); err != nil {
		return nil, fmt.Errorf("confirm order payment: %w", err)
	}

	oldStatus := order.Status
	order.PaymentStatus = domain.PaymentStatusPaid
	order.PaymentProofURL = proofURL
	order.Status = domain.OrderStatusProcessing
	order.UpdatedAt = time.Now().UTC()

	if err := s.producer.PublishOrderStatusChanged(ctx, order, oldStatus); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order status changed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order payment confirmed", slog.String("order_id", order.ID))

	return order, nil
}

// UpdateStatus moves an order through its lifecycle. Invalid transitions
// are a conflict.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, input UpdateOrderStatusInput) (*domain.Order, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}
	if !domain.IsValidOrderStatus(input.Status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid status %q", input.Status))
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order for status update: %w", err)
	}

	if !order.CanTransitionTo(input.Status) {
		return nil, apperrors.Conflict(fmt.Sprintf("cannot transition order from %s to %s", order.Status, input.Status))
	}

	oldStatus := order.Status
	if err := s.orders.UpdateStatus(ctx, id, input.Status); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	order.Status = input.Status
	order.UpdatedAt = time.Now().UTC()

	if err := s.producer.PublishOrderStatusChanged(ctx, order, oldStatus); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order status changed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", order.ID),
		slog.String("old_status", oldStatus),
		slog.String("new_status", order.Status),
	)

	return order, nil
}

func validateAddress(addr domain.Address) error {
	switch {
	case addr.AddressLine == "":
		return apperrors.InvalidInput("shipping address line is required")
	case addr.City == "":
		return apperrors.InvalidInput("shipping city is required")
	case addr.PostalCode == "":
		return apperrors.InvalidInput("shipping postal code is required")
	case addr.Country == "":
		return apperrors.InvalidInput("shipping country is required")
	}
	return nil
}
