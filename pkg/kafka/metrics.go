package kafka

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Consumer and producer counters for the event pipeline. Labels carry the
// fully-qualified topic, so dashboards can slice per domain.
var (
	ConsumerMessagesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artmuse_kafka_consumer_messages_received_total",
			Help: "Messages fetched from the broker, before handling",
		},
		[]string{"topic", "consumer_group"},
	)

	ConsumerMessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artmuse_kafka_consumer_messages_processed_total",
			Help: "Messages whose handler completed without error",
		},
		[]string{"topic", "consumer_group"},
	)

	ConsumerMessagesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artmuse_kafka_consumer_messages_failed_total",
			Help: "Messages that exhausted every handler retry",
		},
		[]string{"topic", "consumer_group"},
	)

	ConsumerMessagesDuplicate = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artmuse_kafka_consumer_messages_duplicate_total",
			Help: "Redelivered messages skipped by the idempotency guard",
		},
		[]string{"event_type"},
	)

	ConsumerDLQPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artmuse_kafka_consumer_dlq_published_total",
			Help: "Messages forwarded to a dead-letter topic",
		},
		[]string{"topic", "consumer_group"},
	)

	ProducerMessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artmuse_kafka_producer_messages_published_total",
			Help: "Events published to Kafka",
		},
		[]string{"topic"},
	)

	ProducerPublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artmuse_kafka_producer_publish_errors_total",
			Help: "Event publishes that returned an error",
		},
		[]string{"topic"},
	)

	ProducerPublishDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "artmuse_kafka_producer_publish_duration_seconds",
			Help:    "Time spent writing an event to the broker",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"topic"},
	)
)
