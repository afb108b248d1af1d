package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the prompt dashboard
type Config struct {
	// HTTP configuration
	HTTPPort       int   `env:"HTTP_PORT" envDefault:"8080"`
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`

	// Dashboard configuration
	DashboardFile  string `env:"DASHBOARD_FILE" envDefault:""`
	ChartWidth     int    `env:"CHART_WIDTH" envDefault:"600"`
	ChartHeight    int    `env:"CHART_HEIGHT" envDefault:"300"`
	OutputDir      string `env:"OUTPUT_DIR" envDefault:""`
	OutputFilename string `env:"OUTPUT_FILENAME" envDefault:"llm_prompt.txt"`

	// Redis configuration (optional)
	RedisAddr     string `env:"REDIS_ADDR" envDefault:""`
	RedisPassword string `env:"REDIS_PASS" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	PromptStream  string `env:"PROMPT_STREAM" envDefault:"prompts.generated"`

	// Stream worker configuration
	WorkerEnabled bool          `env:"WORKER_ENABLED" envDefault:"false"`
	WorkerID      string        `env:"WORKER_ID" envDefault:"dashboard-1"`
	StreamKey     string        `env:"STREAM_KEY" envDefault:"prompts.work"`
	ConsumerGroup string        `env:"CONSUMER_GROUP" envDefault:"prompt-workers"`
	ResultStream  string        `env:"RESULT_STREAM" envDefault:"prompts.rendered"`
	BlockTime     time.Duration `env:"BLOCK_TIME" envDefault:"1s"`

	// Health check configuration
	HealthPort int `env:"HEALTH_PORT" envDefault:"8082"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !isValidPort(c.HTTPPort) {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}

	if !isValidPort(c.HealthPort) {
		return fmt.Errorf("HEALTH_PORT must be between 1 and 65535")
	}

	if c.HTTPPort == c.HealthPort {
		return fmt.Errorf("HTTP_PORT and HEALTH_PORT must differ")
	}

	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}

	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("CHART_WIDTH and CHART_HEIGHT must be positive")
	}

	if c.OutputFilename == "" {
		return fmt.Errorf("OUTPUT_FILENAME is required")
	}

	if c.RedisAddr != "" && c.PromptStream == "" {
		return fmt.Errorf("PROMPT_STREAM is required when REDIS_ADDR is set")
	}

	if c.WorkerEnabled {
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when WORKER_ENABLED is true")
		}
		if c.WorkerID == "" {
			return fmt.Errorf("WORKER_ID is required")
		}
		if c.StreamKey == "" {
			return fmt.Errorf("STREAM_KEY is required")
		}
		if c.ConsumerGroup == "" {
			return fmt.Errorf("CONSUMER_GROUP is required")
		}
		if c.ResultStream == "" {
			return fmt.Errorf("RESULT_STREAM is required")
		}
		if c.BlockTime <= 0 {
			return fmt.Errorf("BLOCK_TIME must be positive")
		}
	}

	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	return nil
}

// RedisEnabled reports whether a Redis server is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func isValidPort(port int) bool {
	return port > 0 && port <= 65535
}

// isValidLogLevel checks if the log level is valid
func isValidLogLevel(level string) bool {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	return validLevels[level]
}

// String returns a string representation of the config (without sensitive data)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{HTTPPort=%d, HealthPort=%d, DashboardFile=%s, OutputDir=%s, OutputFilename=%s, "+
			"RedisAddr=%s, RedisDB=%d, PromptStream=%s, WorkerEnabled=%v, WorkerID=%s, StreamKey=%s, LogLevel=%s}",
		c.HTTPPort,
		c.HealthPort,
		c.DashboardFile,
		c.OutputDir,
		c.OutputFilename,
		c.RedisAddr,
		c.RedisDB,
		c.PromptStream,
		c.WorkerEnabled,
		c.WorkerID,
		c.StreamKey,
		c.LogLevel,
	)
}
