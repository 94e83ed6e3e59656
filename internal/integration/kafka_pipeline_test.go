//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/farm-location-etl/internal/adapter/kafka"
	"github.com/couchcryptid/farm-location-etl/internal/config"
	"github.com/couchcryptid/farm-location-etl/internal/domain"
	"github.com/couchcryptid/farm-location-etl/internal/observability"
	"github.com/couchcryptid/farm-location-etl/internal/pipeline"
)

const (
	testSourceTopic = "test-source"
	testSinkTopic   = "test-sink"
)

// normalizedMessage holds a deserialized message read from the sink topic.
type normalizedMessage struct {
	Profile domain.Profile
	Key     string
	Headers map[string]string
}

// readNormalized reads a single message from the sink consumer and deserializes it.
func readNormalized(ctx context.Context, t *testing.T, consumer *kafkago.Reader) normalizedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var p domain.Profile
	require.NoError(t, json.Unmarshal(msg.Value, &p), "unmarshal sink message")

	return normalizedMessage{Profile: p, Key: string(msg.Key), Headers: headers}
}

func testConfig(broker, group string) *config.Config {
	return &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("%s-%d", group, time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}
}

func sinkConsumer(t *testing.T, broker string) *kafkago.Reader {
	t.Helper()
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

func publishProfiles(ctx context.Context, t *testing.T, broker string, msgs ...kafkago.Message) {
	t.Helper()
	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })
	require.NoError(t, producer.WriteMessages(ctx, msgs...))
}

func profileMessage(t *testing.T, rp domain.RawProfile) kafkago.Message {
	t.Helper()
	payload, err := json.Marshal(rp)
	require.NoError(t, err)
	return kafkago.Message{Key: []byte(rp.ID), Value: payload}
}

// TestKafkaReaderWriter verifies the adapter layer: kafka.Reader (Extractor) and
// kafka.Writer (Loader) round-trip a profile through Kafka.
func TestKafkaReaderWriter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-reader")

	msg := profileMessage(t, domain.RawProfile{ID: "farm-1", Location: "Village Khanpur, Karnal, Haryana"})
	publishProfiles(ctx, t, broker, msg)

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	batch, err := reader.ExtractBatch(ctx, 1)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	raw := batch[0]
	assert.Equal(t, []byte("farm-1"), raw.Key)
	assert.Equal(t, msg.Value, raw.Value)
	assert.Equal(t, testSourceTopic, raw.Topic)
	require.NotNil(t, raw.Commit, "commit callback should be set")
	require.NoError(t, raw.Commit(ctx))

	transformer := pipeline.NewTransformer("haryana", "sonipat", discardLogger())
	profile, err := transformer.Transform(ctx, raw)
	require.NoError(t, err)

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })
	require.NoError(t, writer.LoadBatch(ctx, []domain.Profile{profile}))

	nm := readNormalized(ctx, t, sinkConsumer(t, broker))
	assert.Equal(t, "farm-1", nm.Key)
	assert.Equal(t, domain.SourceParsed, nm.Headers["location_source"])
	_, err = time.Parse(time.RFC3339, nm.Headers["updated_at"])
	assert.NoError(t, err, "updated_at should be valid RFC3339")

	assert.Equal(t, "Village Khanpur, Karnal, Haryana", nm.Profile.Location)
	assert.Equal(t, domain.Address{Village: "Village Khanpur", DistrictCode: "karnal", RegionCode: "haryana"}, nm.Profile.Address)
}

// TestPipelineEndToEnd wires Reader -> Transformer -> Writer with real Kafka
// and checks every fixture profile arrives normalized.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-pipeline")

	raws := loadRawProfiles(t)
	msgs := make([]kafkago.Message, 0, len(raws))
	for _, rp := range raws {
		msgs = append(msgs, profileMessage(t, rp))
	}
	publishProfiles(ctx, t, broker, msgs...)

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	transformer := pipeline.NewTransformer("haryana", "sonipat", discardLogger())
	p := pipeline.New(reader, transformer, writer, discardLogger(), metrics, 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	// farm-012 names a district outside its region and is skipped.
	want := len(raws) - 1
	consumer := sinkConsumer(t, broker)
	received := make(map[string]normalizedMessage, want)
	for len(received) < want {
		nm := readNormalized(ctx, t, consumer)
		received[nm.Key] = nm
	}

	pipelineCancel()
	require.NoError(t, <-errCh)

	assert.NotContains(t, received, "farm-012")
	sources := map[string]int{}
	for id, nm := range received {
		sources[nm.Profile.LocationSource]++
		assert.Equal(t, nm.Profile.LocationSource, nm.Headers["location_source"], id)
		if nm.Profile.LocationSource != domain.SourceNone {
			composed, err := nm.Profile.Address.Compose()
			require.NoError(t, err, id)
			assert.Equal(t, composed, nm.Profile.Location, id)
		}
	}
	assert.Equal(t, 4, sources[domain.SourceComposed], "composed count")
	assert.Equal(t, 4, sources[domain.SourceParsed], "parsed count")
	assert.Equal(t, 3, sources[domain.SourceResolved], "resolved count")
	assert.Equal(t, 2, sources[domain.SourceNone], "none count")

	assert.Equal(t, "Kovalam, District 1, Kerala", received["farm-003"].Profile.Location)
	assert.True(t, received["farm-003"].Profile.GenericDistricts)
	assert.Equal(t, "Mandore, Jaipur, Rajasthan", received["farm-007"].Profile.Location)
	assert.Equal(t, []string{"wheat", "gram"}, received["farm-011"].Profile.Crops)
}

// TestPipelineTransformError verifies that a poison pill is skipped and the
// pipeline continues with valid messages.
func TestPipelineTransformError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-poison")

	publishProfiles(ctx, t, broker,
		kafkago.Message{Key: []byte("bad"), Value: []byte("not-json{{{")},
		profileMessage(t, domain.RawProfile{ID: "farm-unknown", RegionCode: "atlantis"}),
		profileMessage(t, domain.RawProfile{ID: "farm-good", PostalCode: "560001"}),
	)

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	transformer := pipeline.NewTransformer("haryana", "sonipat", discardLogger())
	p := pipeline.New(reader, transformer, writer, discardLogger(), observability.NewMetricsForTesting(), 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := sinkConsumer(t, broker)
	nm := readNormalized(ctx, t, consumer)
	assert.Equal(t, "farm-good", nm.Key)
	assert.Equal(t, "karnataka", nm.Profile.Address.RegionCode)

	// No second message: both bad messages were skipped.
	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err := consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no second message on sink topic")

	pipelineCancel()
	require.NoError(t, <-errCh)
}
