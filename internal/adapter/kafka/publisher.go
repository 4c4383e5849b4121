package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/station-report-service/internal/config"
	"github.com/couchcryptid/station-report-service/internal/domain"
)

// Publisher produces generated reports to a Kafka topic so downstream
// consumers (dashboards, archival jobs) can pick them up. It is
// feature-flagged via KAFKA_ENABLED and the service runs fine without it.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured sink topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishReport serializes and publishes one report to the sink topic.
func (p *Publisher) PublishReport(ctx context.Context, report domain.Report) error {
	msg, err := serializeReport(report)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeReport marshals a report into a Kafka message. The generation
// timestamp keys the message and the headers let consumers filter without
// deserializing the payload.
func serializeReport(report domain.Report) (kafkago.Message, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize report: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(report.GeneratedAt.UTC().Format(time.RFC3339Nano)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "generated_at", Value: []byte(report.GeneratedAt.UTC().Format(time.RFC3339))},
			{Key: "groups", Value: []byte(strconv.Itoa(len(report.Groups)))},
		},
	}, nil
}
