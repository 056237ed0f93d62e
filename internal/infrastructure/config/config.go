package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Reference sample sources.
const (
	SampleSourceArtifact = "artifact"
	SampleSourcePostgres = "postgres"
)

type DatabaseConfig struct {
	URL           string
	MigrationsDir string
	MaxConns      int
}

type KafkaConfig struct {
	Brokers       []string
	Topic         string
	ClientID      string
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
	TLS           bool
	SASLEnabled   bool
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// Enabled reports whether the gRPC listener should serve TLS.
func (t TLSConfig) Enabled() bool { return t.CertFile != "" && t.KeyFile != "" }

type TracingConfig struct {
	OTLPEndpoint string
	Insecure     bool
}

// Config holds all configuration for the scoring service.
type Config struct {
	Kafka                 KafkaConfig
	DB                    DatabaseConfig
	TLS                   TLSConfig
	Tracing               TracingConfig
	ServiceName           string
	Version               string
	Environment           string
	LogLevel              string
	LogFormat             string
	ArtifactPath          string
	DefaultVariant        string
	ReferenceSampleSource string
	GRPCPort              int
	HTTPPort              int
	ShutdownTimeout       time.Duration
	GRPCReflection        bool
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		ServiceName:           "loanscore",
		Version:               getEnv("SERVICE_VERSION", "dev"),
		GRPCPort:              getEnvInt("GRPC_PORT", 9090),
		HTTPPort:              getEnvInt("HTTP_PORT", 8080),
		Environment:           getEnv("ENVIRONMENT", "development"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "json"),
		ArtifactPath:          getEnv("ARTIFACT_PATH", "artifacts/models.yaml"),
		DefaultVariant:        getEnv("DEFAULT_VARIANT", "basic-three-tier"),
		ReferenceSampleSource: getEnv("REFERENCE_SAMPLE_SOURCE", SampleSourceArtifact),
		ShutdownTimeout:       time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		GRPCReflection:        getEnvBool("GRPC_REFLECTION", false),
		DB: DatabaseConfig{
			URL:           getEnv("DATABASE_URL", ""),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
			MaxConns:      getEnvInt("DB_MAX_CONNS", 4),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS"),
			Topic:         getEnv("KAFKA_TOPIC", "loanscore.assessments"),
			ClientID:      getEnv("KAFKA_CLIENT_ID", "loanscore"),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLEnabled:   getEnvBool("KAFKA_SASL_ENABLED", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", "SCRAM-SHA-512"),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		TLS: TLSConfig{
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
		Tracing: TracingConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:     getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		},
	}
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.ReferenceSampleSource {
	case SampleSourceArtifact:
	case SampleSourcePostgres:
		if c.DB.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when REFERENCE_SAMPLE_SOURCE=%s", SampleSourcePostgres)
		}
	default:
		return fmt.Errorf("REFERENCE_SAMPLE_SOURCE must be %q or %q, got %q",
			SampleSourceArtifact, SampleSourcePostgres, c.ReferenceSampleSource)
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		return fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	if c.Kafka.SASLEnabled && c.Kafka.SASLUsername == "" {
		return fmt.Errorf("KAFKA_SASL_USERNAME is required when KAFKA_SASL_ENABLED is set")
	}
	if c.ArtifactPath == "" {
		return fmt.Errorf("ARTIFACT_PATH is required")
	}
	return nil
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
