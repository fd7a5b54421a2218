package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	pkgkafka "github.com/Tazdar-Rahim/artmuse-server/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicOrderCreated             = "artmuse.order.created"
	TopicOrderStatusChanged       = "artmuse.order.status_changed"
	TopicCommissionRequested      = "artmuse.commission.requested"
	TopicCommissionStatusChanged  = "artmuse.commission.status_changed"
	TopicConsultationBooked       = "artmuse.consultation.booked"
	TopicConsultationRescheduled  = "artmuse.consultation.rescheduled"
	TopicUserRegistered           = "artmuse.user.registered"
	TopicUserPasswordResetRequest = "artmuse.user.password_reset_requested"
)

// Aggregate type constants.
const (
	AggregateTypeOrder        = "order"
	AggregateTypeCommission   = "commission_request"
	AggregateTypeConsultation = "consultation_booking"
	AggregateTypeUser         = "user"
)

// Source identifier for events originating from this server.
const Source = "artmuse-server"

// OrderCreatedData is the payload for an order.created event (full order snapshot).
type OrderCreatedData struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	Status        string          `json:"status"`
	Items         []OrderItemData `json:"items"`
	TotalAmount   int64           `json:"total_amount"`
	Currency      string          `json:"currency"`
}

// OrderItemData is the event payload for an order item.
type OrderItemData struct {
	ArtworkID string `json:"artwork_id"`
	Title     string `json:"title"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// OrderStatusChangedData is the payload for an order.status_changed event.
type OrderStatusChangedData struct {
	OrderID       string `json:"order_id"`
	CustomerEmail string `json:"customer_email"`
	CustomerName  string `json:"customer_name"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
}

// CommissionRequestedData is the payload for a commission.requested event.
type CommissionRequestedData struct {
	RequestID     string `json:"request_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	PackageID     string `json:"package_id,omitempty"`
}

// CommissionStatusChangedData is the payload for a commission.status_changed event.
type CommissionStatusChangedData struct {
	RequestID     string `json:"request_id"`
	CustomerEmail string `json:"customer_email"`
	CustomerName  string `json:"customer_name"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
	QuoteAmount   *int64 `json:"quote_amount,omitempty"`
}

// ConsultationBookedData is the payload for a consultation.booked event.
type ConsultationBookedData struct {
	BookingID     string `json:"booking_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	PreferredDate string `json:"preferred_date"`
	PreferredTime string `json:"preferred_time"`
}

// ConsultationRescheduledData is the payload for a consultation.rescheduled event.
type ConsultationRescheduledData struct {
	BookingID     string `json:"booking_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	OldDate       string `json:"old_date"`
	OldTime       string `json:"old_time"`
	NewDate       string `json:"new_date"`
	NewTime       string `json:"new_time"`
}

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishOrderCreated publishes an order.created event with the full order snapshot.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	items := make([]OrderItemData, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemData{
			ArtworkID: item.ArtworkID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	data := OrderCreatedData{
		ID:            order.ID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		Status:        order.Status,
		Items:         items,
		TotalAmount:   order.TotalAmount,
		Currency:      order.Currency,
	}

	return p.publish(ctx, TopicOrderCreated, order.ID, AggregateTypeOrder, data)
}

// PublishOrderStatusChanged publishes an order.status_changed event.
func (p *Producer) PublishOrderStatusChanged(ctx context.Context, order *domain.Order, oldStatus string) error {
	data := OrderStatusChangedData{
		OrderID:       order.ID,
		CustomerEmail: order.CustomerEmail,
		CustomerName:  order.CustomerName,
		OldStatus:     oldStatus,
		NewStatus:     order.Status,
	}

	return p.publish(ctx, TopicOrderStatusChanged, order.ID, AggregateTypeOrder, data)
}

// PublishCommissionRequested publishes a commission.requested event.
func (p *Producer) PublishCommissionRequested(ctx context.Context, req *domain.CommissionRequest) error {
	data := CommissionRequestedData{
		RequestID:     req.ID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
	}
	if req.PackageID != nil {
		data.PackageID = *req.PackageID
	}

	return p.publish(ctx, TopicCommissionRequested, req.ID, AggregateTypeCommission, data)
}

// PublishCommissionStatusChanged publishes a commission.status_changed event.
func (p *Producer) PublishCommissionStatusChanged(ctx context.Context, req *domain.CommissionRequest, oldStatus string) error {
	data := CommissionStatusChangedData{
		RequestID:     req.ID,
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		OldStatus:     oldStatus,
		NewStatus:     req.Status,
		QuoteAmount:   req.QuoteAmount,
	}

	return p.publish(ctx, TopicCommissionStatusChanged, req.ID, AggregateTypeCommission, data)
}

// PublishConsultationBooked publishes a consultation.booked event.
func (p *Producer) PublishConsultationBooked(ctx context.Context, booking *domain.ConsultationBooking) error {
	data := ConsultationBookedData{
		BookingID:     booking.ID,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		PreferredDate: booking.PreferredDate,
		PreferredTime: booking.PreferredTime,
	}

	return p.publish(ctx, TopicConsultationBooked, booking.ID, AggregateTypeConsultation, data)
}

// PublishConsultationRescheduled publishes a consultation.rescheduled event.
func (p *Producer) PublishConsultationRescheduled(ctx context.Context, booking *domain.ConsultationBooking, oldDate, oldTime string) error {
	data := ConsultationRescheduledData{
		BookingID:     booking.ID,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		OldDate:       oldDate,
		OldTime:       oldTime,
		NewDate:       booking.PreferredDate,
		NewTime:       booking.PreferredTime,
	}

	return p.publish(ctx, TopicConsultationRescheduled, booking.ID, AggregateTypeConsultation, data)
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
	}

	return p.publish(ctx, TopicUserRegistered, user.ID, AggregateTypeUser, data)
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, Source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)

	return nil
}
