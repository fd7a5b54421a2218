package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// DLQTopicPrefix prefixes every dead-letter topic. The poison copy of
// "artmuse.order.created" lands on "artmuse.dlq.artmuse.order.created".
const DLQTopicPrefix = TopicPrefix + ".dlq"

// DLQTopic returns the dead-letter topic for a source topic.
func DLQTopic(sourceTopic string) string {
	return DLQTopicPrefix + "." + sourceTopic
}

// DLQProducer forwards messages that exhausted their handler retries to the
// matching dead-letter topic, preserving the original payload so the event
// can be replayed once the handler is fixed.
type DLQProducer struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewDLQProducer creates a dead-letter producer. Writes are synchronous and
// fully acknowledged; losing the only copy of a failed event defeats the
// point of a DLQ.
func NewDLQProducer(brokers []string, logger *slog.Logger) *DLQProducer {
	return &DLQProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchSize:    1,
			BatchTimeout: 100 * time.Millisecond,
			RequiredAcks: kafka.RequireAll,
		},
		logger: logger,
	}
}

// Publish copies the failed message onto its dead-letter topic. Provenance
// travels as headers alongside whatever headers the message already carried.
func (d *DLQProducer) Publish(ctx context.Context, src kafka.Message, cause error, group string) error {
	topic := DLQTopic(src.Topic)

	headers := append([]kafka.Header(nil), src.Headers...)
	headers = append(headers,
		kafka.Header{Key: "dlq.original_topic", Value: []byte(src.Topic)},
		kafka.Header{Key: "dlq.original_partition", Value: []byte(strconv.Itoa(src.Partition))},
		kafka.Header{Key: "dlq.original_offset", Value: []byte(strconv.FormatInt(src.Offset, 10))},
		kafka.Header{Key: "dlq.consumer_group", Value: []byte(group)},
	)
	if cause != nil {
		headers = append(headers, kafka.Header{Key: "dlq.error", Value: []byte(cause.Error())})
	}

	err := d.writer.WriteMessages(ctx, kafka.Message{
		Topic:   topic,
		Key:     src.Key,
		Value:   src.Value,
		Headers: headers,
	})
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to forward message to dead-letter topic",
			slog.String("dlq_topic", topic),
			slog.String("source_topic", src.Topic),
			slog.Int("partition", src.Partition),
			slog.Int64("offset", src.Offset),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("publish to dlq topic %s: %w", topic, err)
	}

	ConsumerDLQPublished.WithLabelValues(src.Topic, group).Inc()
	d.logger.WarnContext(ctx, "message forwarded to dead-letter topic",
		slog.String("dlq_topic", topic),
		slog.String("source_topic", src.Topic),
		slog.Int("partition", src.Partition),
		slog.Int64("offset", src.Offset),
		slog.String("consumer_group", group),
	)

	return nil
}

// Close closes the dead-letter producer.
func (d *DLQProducer) Close() error {
	return d.writer.Close()
}
