package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	pkgkafka "github.com/Tazdar-Rahim/artmuse-server/pkg/kafka"
)

// ConsumerGroupID is the Kafka consumer group for the email dispatcher.
const ConsumerGroupID = "artmuse-email"

// EmailDispatcher sends one of the named email templates to a recipient.
type EmailDispatcher interface {
	Dispatch(ctx context.Context, emailType, to string, data map[string]any) error
}

// ConsumerHandler routes incoming domain events to email dispatches.
// Email failures are logged by the dispatcher and never retried here, so a
// broken mailbox cannot wedge the event stream.
type ConsumerHandler struct {
	emails EmailDispatcher
	logger *slog.Logger
}

// NewConsumerHandler creates a new event consumer handler.
func NewConsumerHandler(emails EmailDispatcher, logger *slog.Logger) *ConsumerHandler {
	return &ConsumerHandler{
		emails: emails,
		logger: logger,
	}
}

// Handle processes an incoming Kafka event based on its event type.
func (h *ConsumerHandler) Handle(ctx context.Context, event *pkgkafka.Event) error {
	switch event.EventType {
	case TopicOrderCreated:
		return h.handleOrderCreated(ctx, event)
	case TopicOrderStatusChanged:
		return h.handleOrderStatusChanged(ctx, event)
	case TopicCommissionStatusChanged:
		return h.handleCommissionStatusChanged(ctx, event)
	case TopicConsultationBooked:
		return h.handleConsultationBooked(ctx, event)
	case TopicConsultationRescheduled:
		return h.handleConsultationRescheduled(ctx, event)
	case TopicUserRegistered:
		return h.handleUserRegistered(ctx, event)
	case TopicCommissionRequested:
		// Acknowledged to the admin, not the customer; the customer hears
		// back on the first status change.
		return nil
	default:
		h.logger.WarnContext(ctx, "unknown event type received",
			slog.String("event_type", event.EventType),
			slog.String("event_id", event.EventID),
		)
		return nil
	}
}

func (h *ConsumerHandler) handleOrderCreated(ctx context.Context, event *pkgkafka.Event) error {
	var data OrderCreatedData
	if err := event.UnmarshalData(&data); err != nil {
		return fmt.Errorf("unmarshal order.created data: %w", err)
	}

	return h.emails.Dispatch(ctx, domain.EmailTypeOrderConfirmation, data.CustomerEmail, map[string]any{
		"Name":    data.CustomerName,
		"OrderID": data.ID,
		"Total":   data.TotalAmount,
	})
}

func (h *ConsumerHandler) handleOrderStatusChanged(ctx context.Context, event *pkgkafka.Event) error {
	var data OrderStatusChangedData
	if err := event.UnmarshalData(&data); err != nil {
		return fmt.Errorf("unmarshal order.status_changed data: %w", err)
	}

	return h.emails.Dispatch(ctx, domain.EmailTypeOrderStatus, data.CustomerEmail, map[string]any{
		"Name":    data.CustomerName,
		"OrderID": data.OrderID,
		"Status":  data.NewStatus,
	})
}

func (h *ConsumerHandler) handleCommissionStatusChanged(ctx context.Context, event *pkgkafka.Event) error {
	var data CommissionStatusChangedData
	if err := event.UnmarshalData(&data); err != nil {
		return fmt.Errorf("unmarshal commission.status_changed data: %w", err)
	}

	// A transition into quoted carries the quote amount and uses the quote
	// template; every other transition uses the generic status template.
	if data.NewStatus == domain.CommissionStatusQuoted && data.QuoteAmount != nil {
		return h.emails.Dispatch(ctx, domain.EmailTypeCommissionQuote, data.CustomerEmail, map[string]any{
			"Name":      data.CustomerName,
			"RequestID": data.RequestID,
			"Quote":     *data.QuoteAmount,
		})
	}

	return h.emails.Dispatch(ctx, domain.EmailTypeCommissionStatus, data.CustomerEmail, map[string]any{
		"Name":      data.CustomerName,
		"RequestID": data.RequestID,
		"Status":    data.NewStatus,
	})
}

func (h *ConsumerHandler) handleConsultationBooked(ctx context.Context, event *pkgkafka.Event) error {
	var data ConsultationBookedData
	if err := event.UnmarshalData(&data); err != nil {
		return fmt.Errorf("unmarshal consultation.booked data: %w", err)
	}

	return h.emails.Dispatch(ctx, domain.EmailTypeConsultationConfirmed, data.CustomerEmail, map[string]any{
		"Name": data.CustomerName,
		"Date": data.PreferredDate,
		"Time": data.PreferredTime,
	})
}

func (h *ConsumerHandler) handleConsultationRescheduled(ctx context.Context, event *pkgkafka.Event) error {
	var data ConsultationRescheduledData
	if err := event.UnmarshalData(&data); err != nil {
		return fmt.Errorf("unmarshal consultation.rescheduled data: %w", err)
	}

	return h.emails.Dispatch(ctx, domain.EmailTypeConsultationReschedule, data.CustomerEmail, map[string]any{
		"Name":    data.CustomerName,
		"OldDate": data.OldDate,
		"OldTime": data.OldTime,
		"NewDate": data.NewDate,
		"NewTime": data.NewTime,
	})
}

func (h *ConsumerHandler) handleUserRegistered(ctx context.Context, event *pkgkafka.Event) error {
	var data UserRegisteredData
	if err := event.UnmarshalData(&data); err != nil {
		return fmt.Errorf("unmarshal user.registered data: %w", err)
	}

	return h.emails.Dispatch(ctx, domain.EmailTypeWelcome, data.Email, map[string]any{
		"Name": data.FirstName,
	})
}

// NewConsumers creates Kafka consumers for every topic the email dispatcher
// subscribes to, wrapped in an idempotent handler so redelivered events do
// not send duplicate mail. Events that fail every retry land on the shared
// dead-letter producer, which the caller owns and must close.
func NewConsumers(brokers []string, handler *ConsumerHandler, store pkgkafka.IdempotencyStore, logger *slog.Logger) ([]*pkgkafka.Consumer, *pkgkafka.DLQProducer) {
	topics := []string{
		TopicOrderCreated,
		TopicOrderStatusChanged,
		TopicCommissionStatusChanged,
		TopicConsultationBooked,
		TopicConsultationRescheduled,
		TopicUserRegistered,
	}

	wrapped := pkgkafka.IdempotentHandler(store, handler.Handle, logger)
	dlq := pkgkafka.NewDLQProducer(brokers, logger)

	consumers := make([]*pkgkafka.Consumer, 0, len(topics))
	for _, topic := range topics {
		cfg := pkgkafka.ConsumerConfig{
			Brokers:  brokers,
			GroupID:  ConsumerGroupID,
			Topic:    topic,
			MinBytes: 1,
			MaxBytes: 10e6,
		}

		consumers = append(consumers, pkgkafka.NewConsumer(cfg, wrapped, dlq, logger))
	}

	return consumers, dlq
}
