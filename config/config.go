package config

import (
	"fmt"
	"time"
)

type Config struct {
	Server     ServerConfig     `json:"server"`
	Database   DatabaseConfig   `json:"database"`
	Fetch      FetchConfig      `json:"fetch"`
	MediaProxy MediaProxyConfig `json:"media_proxy"`
	RateLimit  RateLimitConfig  `json:"rate_limit"`
	History    HistoryConfig    `json:"history"`
	Archive    ArchiveConfig    `json:"archive"`
	Logging    LoggingConfig    `json:"logging"`
	Telemetry  TelemetryConfig  `json:"telemetry"`
}

type ServerConfig struct {
	Port            int           `json:"port" env:"SERVER_PORT" default:"9000"`
	ReadTimeout     time.Duration `json:"read_timeout" env:"SERVER_READ_TIMEOUT" default:"60s"`
	WriteTimeout    time.Duration `json:"write_timeout" env:"SERVER_WRITE_TIMEOUT" default:"90s"`
	IdleTimeout     time.Duration `json:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
	BodyLimit       string        `json:"body_limit" env:"SERVER_BODY_LIMIT" default:"2M"`
	CORSOrigins     []string      `json:"cors_origins" env:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000"`
}

type DatabaseConfig struct {
	Host              string        `json:"host" env:"DB_HOST" default:"localhost"`
	Port              int           `json:"port" env:"DB_PORT" default:"5432"`
	User              string        `json:"user" env:"DB_USER" default:"feedcore"`
	Password          string        `json:"-" env:"DB_PASSWORD"`
	Name              string        `json:"name" env:"DB_NAME" default:"feedcore"`
	SSLMode           string        `json:"ssl_mode" env:"DB_SSL_MODE" default:"disable"`
	MaxConnections    int           `json:"max_connections" env:"DB_MAX_CONNECTIONS" default:"25"`
	ConnectionTimeout time.Duration `json:"connection_timeout" env:"DB_CONNECTION_TIMEOUT" default:"30s"`
}

// DSN returns a libpq style connection string for pgx.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type FetchConfig struct {
	FeedTimeout         time.Duration `json:"feed_timeout" env:"FETCH_FEED_TIMEOUT" default:"15s"`
	MediaTimeout        time.Duration `json:"media_timeout" env:"FETCH_MEDIA_TIMEOUT" default:"30s"`
	DNSTimeout          time.Duration `json:"dns_timeout" env:"FETCH_DNS_TIMEOUT" default:"5s"`
	DialTimeout         time.Duration `json:"dial_timeout" env:"FETCH_DIAL_TIMEOUT" default:"10s"`
	TLSHandshakeTimeout time.Duration `json:"tls_handshake_timeout" env:"FETCH_TLS_HANDSHAKE_TIMEOUT" default:"10s"`
	MaxRedirects        int           `json:"max_redirects" env:"FETCH_MAX_REDIRECTS" default:"5"`
	FeedMaxBytes        int64         `json:"feed_max_bytes" env:"FETCH_FEED_MAX_BYTES" default:"5242880"`
	UserAgent           string        `json:"user_agent" env:"FETCH_USER_AGENT" default:"feedcore/1.0 (+https://github.com/feedcore)"`
}

type MediaProxyConfig struct {
	MaxBytes     int64  `json:"max_bytes" env:"MEDIA_PROXY_MAX_BYTES" default:"10485760"`
	CacheControl string `json:"cache_control" env:"MEDIA_PROXY_CACHE_CONTROL" default:"public, max-age=43200, immutable"`
	ChunkSize    int    `json:"chunk_size" env:"MEDIA_PROXY_CHUNK_SIZE" default:"32768"`
	DefaultMode  string `json:"default_mode" env:"MEDIA_DEFAULT_MODE" default:"proxy"`
}

type RateLimitConfig struct {
	Window        time.Duration `json:"window" env:"RATE_LIMIT_WINDOW" default:"60s"`
	Ceiling       int           `json:"ceiling" env:"RATE_LIMIT_CEILING" default:"30"`
	Backend       string        `json:"backend" env:"RATE_LIMIT_BACKEND" default:"memory"`
	RedisURL      string        `json:"-" env:"RATE_LIMIT_REDIS_URL" default:"redis://localhost:6379/0"`
	SweepInterval time.Duration `json:"sweep_interval" env:"RATE_LIMIT_SWEEP_INTERVAL" default:"5m"`
}

type HistoryConfig struct {
	RetentionDays int `json:"retention_days" env:"HISTORY_RETENTION_DAYS" default:"60"`
	MaxBatchItems int `json:"max_batch_items" env:"HISTORY_MAX_BATCH_ITEMS" default:"200"`
}

// Retention returns the retention horizon as a duration.
func (c HistoryConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

type ArchiveConfig struct {
	Enabled      bool          `json:"enabled" env:"ARCHIVE_ENABLED" default:"true"`
	Interval     time.Duration `json:"interval" env:"ARCHIVE_INTERVAL" default:"30m"`
	Timeout      time.Duration `json:"timeout" env:"ARCHIVE_TIMEOUT" default:"10m"`
	Concurrency  int           `json:"concurrency" env:"ARCHIVE_CONCURRENCY" default:"4"`
	HostInterval time.Duration `json:"host_interval" env:"ARCHIVE_HOST_INTERVAL" default:"2s"`
}

type LoggingConfig struct {
	Level  string `json:"level" env:"LOG_LEVEL" default:"info"`
	Format string `json:"format" env:"LOG_FORMAT" default:"json"`
}

type TelemetryConfig struct {
	Enabled        bool    `json:"enabled" env:"OTEL_ENABLED" default:"false"`
	ServiceName    string  `json:"service_name" env:"OTEL_SERVICE_NAME" default:"feedcore"`
	ServiceVersion string  `json:"service_version" env:"SERVICE_VERSION" default:"0.0.0"`
	Environment    string  `json:"environment" env:"DEPLOYMENT_ENV" default:"development"`
	OTLPEndpoint   string  `json:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"http://localhost:4318"`
	SampleRatio    float64 `json:"sample_ratio" env:"OTEL_TRACE_SAMPLE_RATIO" default:"0.1"`
}

// NewConfig creates a new configuration by loading from environment variables
// with fallback to default values
func NewConfig() (*Config, error) {
	config := &Config{}

	if err := loadFromEnvironment(config); err != nil {
		return nil, err
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}
