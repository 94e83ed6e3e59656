package kafka

import (
	"context"
	"log/slog"
	"sort"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/farm-location-etl/internal/config"
	"github.com/couchcryptid/farm-location-etl/internal/domain"
)

// Writer publishes normalized profiles to the sink topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic. Messages
// are hashed by key so every update of a profile lands on one partition.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes the profiles in a single WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, profiles []domain.Profile) error {
	if len(profiles) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(profiles))
	for i := range profiles {
		msg, err := serializeToMessage(profiles[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return err
	}
	w.logger.Debug("profiles published", "count", len(msgs), "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage converts a profile into a Kafka message keyed by profile
// id. Headers are sorted by key.
func serializeToMessage(p domain.Profile) (kafkago.Message, error) {
	out, err := domain.SerializeProfile(p)
	if err != nil {
		return kafkago.Message{}, err
	}

	keys := make([]string, 0, len(out.Headers))
	for k := range out.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	headers := make([]kafkago.Header, len(keys))
	for i, k := range keys {
		headers[i] = kafkago.Header{Key: k, Value: []byte(out.Headers[k])}
	}
	return kafkago.Message{Key: out.Key, Value: out.Value, Headers: headers}, nil
}
