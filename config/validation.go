package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validateConfig validates the loaded configuration values
func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := validateDatabaseConfig(&config.Database); err != nil {
		return fmt.Errorf("database config validation failed: %w", err)
	}

	if err := validateFetchConfig(&config.Fetch); err != nil {
		return fmt.Errorf("fetch config validation failed: %w", err)
	}

	if err := validateMediaProxyConfig(&config.MediaProxy); err != nil {
		return fmt.Errorf("media proxy config validation failed: %w", err)
	}

	if err := validateRateLimitConfig(&config.RateLimit); err != nil {
		return fmt.Errorf("rate limit config validation failed: %w", err)
	}

	if err := validateHistoryConfig(&config.History); err != nil {
		return fmt.Errorf("history config validation failed: %w", err)
	}

	if err := validateArchiveConfig(&config.Archive); err != nil {
		return fmt.Errorf("archive config validation failed: %w", err)
	}

	if err := validateTelemetryConfig(&config.Telemetry); err != nil {
		return fmt.Errorf("telemetry config validation failed: %w", err)
	}

	return nil
}

func validateServerConfig(config *ServerConfig) error {
	if config.Port < 1 || config.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", config.Port)
	}

	if config.ReadTimeout <= 0 || config.WriteTimeout <= 0 || config.IdleTimeout <= 0 {
		return fmt.Errorf("timeout values must be positive, got read=%v write=%v idle=%v",
			config.ReadTimeout, config.WriteTimeout, config.IdleTimeout)
	}

	if config.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %v", config.ShutdownTimeout)
	}

	return nil
}

func validateDatabaseConfig(config *DatabaseConfig) error {
	if config.Host == "" || config.Name == "" {
		return fmt.Errorf("database host and name are required")
	}

	if config.MaxConnections < 1 {
		return fmt.Errorf("max connections must be at least 1, got %d", config.MaxConnections)
	}

	if config.ConnectionTimeout <= 0 {
		return fmt.Errorf("connection timeout must be positive, got %v", config.ConnectionTimeout)
	}

	return nil
}

func validateFetchConfig(config *FetchConfig) error {
	if config.FeedTimeout <= 0 || config.MediaTimeout <= 0 {
		return fmt.Errorf("fetch timeouts must be positive, got feed=%v media=%v", config.FeedTimeout, config.MediaTimeout)
	}

	if config.DNSTimeout <= 0 || config.DialTimeout <= 0 || config.TLSHandshakeTimeout <= 0 {
		return fmt.Errorf("dns, dial and tls timeouts must be positive")
	}

	if config.MaxRedirects < 0 || config.MaxRedirects > 20 {
		return fmt.Errorf("max redirects must be between 0 and 20, got %d", config.MaxRedirects)
	}

	if config.FeedMaxBytes <= 0 {
		return fmt.Errorf("feed max bytes must be positive, got %d", config.FeedMaxBytes)
	}

	if strings.TrimSpace(config.UserAgent) == "" {
		return fmt.Errorf("user agent must not be empty")
	}

	return nil
}

func validateMediaProxyConfig(config *MediaProxyConfig) error {
	if config.MaxBytes <= 0 {
		return fmt.Errorf("max bytes must be positive, got %d", config.MaxBytes)
	}

	if config.ChunkSize < 512 {
		return fmt.Errorf("chunk size must be at least 512 bytes, got %d", config.ChunkSize)
	}

	switch config.DefaultMode {
	case "proxy", "direct":
	default:
		return fmt.Errorf("default mode must be proxy or direct, got %q", config.DefaultMode)
	}

	return nil
}

func validateRateLimitConfig(config *RateLimitConfig) error {
	if config.Window <= 0 {
		return fmt.Errorf("window must be positive, got %v", config.Window)
	}

	if config.Ceiling < 1 {
		return fmt.Errorf("ceiling must be at least 1, got %d", config.Ceiling)
	}

	if config.SweepInterval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %v", config.SweepInterval)
	}

	switch config.Backend {
	case "memory":
	case "redis":
		if _, err := url.Parse(config.RedisURL); err != nil || config.RedisURL == "" {
			return fmt.Errorf("redis backend requires a valid RATE_LIMIT_REDIS_URL")
		}
	default:
		return fmt.Errorf("backend must be memory or redis, got %q", config.Backend)
	}

	return nil
}

func validateHistoryConfig(config *HistoryConfig) error {
	if config.RetentionDays < 1 {
		return fmt.Errorf("retention days must be at least 1, got %d", config.RetentionDays)
	}

	if config.MaxBatchItems < 1 {
		return fmt.Errorf("max batch items must be at least 1, got %d", config.MaxBatchItems)
	}

	return nil
}

func validateArchiveConfig(config *ArchiveConfig) error {
	if !config.Enabled {
		return nil
	}

	if config.Interval <= 0 || config.Timeout <= 0 {
		return fmt.Errorf("archive interval and timeout must be positive")
	}

	if config.Concurrency < 1 {
		return fmt.Errorf("archive concurrency must be at least 1, got %d", config.Concurrency)
	}

	if config.HostInterval < 0 {
		return fmt.Errorf("host interval must not be negative, got %v", config.HostInterval)
	}

	return nil
}

func validateTelemetryConfig(config *TelemetryConfig) error {
	if config.SampleRatio < 0 || config.SampleRatio > 1 {
		return fmt.Errorf("sample ratio must be between 0 and 1, got %v", config.SampleRatio)
	}

	if config.Enabled && config.OTLPEndpoint == "" {
		return fmt.Errorf("otlp endpoint is required when telemetry is enabled")
	}

	return nil
}
