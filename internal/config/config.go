package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/farm-location-etl/internal/domain"
)

// Sink names accepted in SINK.
const (
	SinkKafka    = "kafka"
	SinkPostgres = "postgres"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Sink selects where normalized profiles go.
	Sink                string
	PostgresDSN         string
	ProfileReadsEnabled bool

	// Fallbacks for location strings that carry no structure.
	DefaultRegion   string
	DefaultDistrict string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "raw-profile-updates"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "normalized-profiles"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "farm-location-etl"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		Sink:                sharedcfg.EnvOrDefault("SINK", SinkKafka),
		PostgresDSN:         os.Getenv("POSTGRES_DSN"),
		ProfileReadsEnabled: os.Getenv("PROFILE_READS_ENABLED") == "true",

		DefaultRegion:   sharedcfg.EnvOrDefault("DEFAULT_REGION", "haryana"),
		DefaultDistrict: sharedcfg.EnvOrDefault("DEFAULT_DISTRICT", "sonipat"),
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}

	switch cfg.Sink {
	case SinkKafka:
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_SINK_TOPIC is required")
		}
	case SinkPostgres:
		if cfg.PostgresDSN == "" {
			return nil, errors.New("SINK is postgres but POSTGRES_DSN is not set")
		}
	default:
		return nil, fmt.Errorf("invalid SINK %q: want kafka or postgres", cfg.Sink)
	}
	if cfg.ProfileReadsEnabled && cfg.PostgresDSN == "" {
		return nil, errors.New("PROFILE_READS_ENABLED is true but POSTGRES_DSN is not set")
	}

	if _, ok := domain.Regions().ByCode(cfg.DefaultRegion); !ok {
		return nil, fmt.Errorf("invalid DEFAULT_REGION %q: %w", cfg.DefaultRegion, domain.ErrUnknownCode)
	}
	if _, ok := domain.Districts().ByCode(cfg.DefaultRegion, cfg.DefaultDistrict); !ok {
		return nil, fmt.Errorf("invalid DEFAULT_DISTRICT %q for region %q: %w",
			cfg.DefaultDistrict, cfg.DefaultRegion, domain.ErrUnknownCode)
	}

	return cfg, nil
}
