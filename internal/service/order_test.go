package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	"github.com/Tazdar-Rahim/artmuse-server/internal/repository"
	apperrors "github.com/Tazdar-Rahim/artmuse-server/pkg/errors"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/pagination"
)

func newOrderServiceFixture() (*OrderService, *mockOrderRepo, *mockCartRepo) {
	orders := new(mockOrderRepo)
	carts := new(mockCartRepo)
	svc := NewOrderService(orders, carts, newTestEventProducer(), newTestLogger())
	return svc, orders, carts
}

func checkoutInput() CheckoutInput {
	return CheckoutInput{
		CustomerName:  "Ana Torres",
		CustomerEmail: "ana@example.com",
		ShippingAddress: domain.Address{
			AddressLine: "12 Canal St",
			City:        "Porto",
			PostalCode:  "4000-123",
			Country:     "PT",
		},
	}
}

func filledCart() *domain.Cart {
	cart := domain.NewCart("sess-1")
	cart.Lines = []domain.CartLine{
		{ArtworkID: "art-1", Title: "Blue Harbor", Price: 25000, Quantity: 2},
		{ArtworkID: "art-2", Title: "Night Study", Price: 12000, Quantity: 1},
	}
	return cart
}

func TestOrderService_Checkout_Success(t *testing.T) {
	svc, orders, carts := newOrderServiceFixture()
	ctx := context.Background()

	carts.On("Get", ctx, "sess-1").Return(filledCart(), nil)
	orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
	carts.On("Delete", ctx, "sess-1").Return(nil)

	order, err := svc.Checkout(ctx, "sess-1", checkoutInput(), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, int64(62000), order.TotalAmount)
	assert.Equal(t, DefaultCurrency, order.Currency)
	require.Len(t, order.Items, 2)
	for _, item := range order.Items {
		assert.Equal(t, order.ID, item.OrderID)
		assert.NotEmpty(t, item.ID)
	}
	orders.AssertExpectations(t)
	carts.AssertExpectations(t)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	svc, _, carts := newOrderServiceFixture()
	ctx := context.Background()

	carts.On("Get", ctx, "sess-1").Return(domain.NewCart("sess-1"), nil)

	_, err := svc.Checkout(ctx, "sess-1", checkoutInput(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestOrderService_Checkout_IncompleteAddress(t *testing.T) {
	svc, _, _ := newOrderServiceFixture()

	input := checkoutInput()
	input.ShippingAddress.City = ""

	_, err := svc.Checkout(context.Background(), "sess-1", input, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestOrderService_Checkout_CartClearFailureIsAbsorbed(t *testing.T) {
	svc, orders, carts := newOrderServiceFixture()
	ctx := context.Background()

	carts.On("Get", ctx, "sess-1").Return(filledCart(), nil)
	orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
	carts.On("Delete", ctx, "sess-1").Return(assert.AnError)

	order, err := svc.Checkout(ctx, "sess-1", checkoutInput(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
}

func TestOrderService_SubmitPaymentProof_Success(t *testing.T) {
	svc, orders, _ := newOrderServiceFixture()
	ctx := context.Background()

	pending := &domain.Order{
		ID:            "order-1",
		CustomerName:  "Ana Torres",
		CustomerEmail: "ana@example.com",
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
	}

	orders.On("GetByID", ctx, "order-1").Return(pending, nil)
	orders.On("ConfirmPayment", ctx, "order-1", "https://cdn/proof.jpg").Return(nil)

	order, err := svc.SubmitPaymentProof(ctx, "order-1", "https://cdn/proof.jpg")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, domain.OrderStatusProcessing, order.Status)
	assert.Equal(t, "https://cdn/proof.jpg", order.PaymentProofURL)
	orders.AssertExpectations(t)
	// Confirmation is one repository write; a separate status update would
	// reopen the window where a paid order stays pending.
	orders.AssertNotCalled(t, "UpdateStatus", ctx, "order-1", domain.OrderStatusProcessing)
}

func TestOrderService_SubmitPaymentProof_AlreadyPaid(t *testing.T) {
	svc, orders, _ := newOrderServiceFixture()
	ctx := context.Background()

	paid := &domain.Order{
		ID:            "order-1",
		Status:        domain.OrderStatusProcessing,
		PaymentStatus: domain.PaymentStatusPaid,
	}
	orders.On("GetByID", ctx, "order-1").Return(paid, nil)

	_, err := svc.SubmitPaymentProof(ctx, "order-1", "https://cdn/proof.jpg")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestOrderService_SubmitPaymentProof_CancelledOrder(t *testing.T) {
	svc, orders, _ := newOrderServiceFixture()
	ctx := context.Background()

	cancelled := &domain.Order{
		ID:            "order-1",
		Status:        domain.OrderStatusCancelled,
		PaymentStatus: domain.PaymentStatusPending,
	}
	orders.On("GetByID", ctx, "order-1").Return(cancelled, nil)

	_, err := svc.SubmitPaymentProof(ctx, "order-1", "https://cdn/proof.jpg")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestOrderService_UpdateStatus_InvalidTransition(t *testing.T) {
	svc, orders, _ := newOrderServiceFixture()
	ctx := context.Background()

	delivered := &domain.Order{ID: "order-1", Status: domain.OrderStatusDelivered}
	orders.On("GetByID", ctx, "order-1").Return(delivered, nil)

	_, err := svc.UpdateStatus(ctx, "order-1", UpdateOrderStatusInput{Status: domain.OrderStatusShipped})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestOrderService_UpdateStatus_Success(t *testing.T) {
	svc, orders, _ := newOrderServiceFixture()
	ctx := context.Background()

	processing := &domain.Order{ID: "order-1", Status: domain.OrderStatusProcessing}
	orders.On("GetByID", ctx, "order-1").Return(processing, nil)
	orders.On("UpdateStatus", ctx, "order-1", domain.OrderStatusShipped).Return(nil)

	order, err := svc.UpdateStatus(ctx, "order-1", UpdateOrderStatusInput{Status: domain.OrderStatusShipped})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, order.Status)
}

func TestOrderService_ListOrders_InvalidStatusFilter(t *testing.T) {
	svc, _, _ := newOrderServiceFixture()

	bogus := "teleported"
	_, err := svc.ListOrders(context.Background(), repository.OrderFilter{Status: &bogus}, pagination.DefaultParams())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
