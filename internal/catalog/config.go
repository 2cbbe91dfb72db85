package catalog

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds data provider configuration.
type Config struct {
	// Provider selects the data source.
	// Values: "http", "mock"
	Provider string `yaml:"provider"`

	// BaseURL is the root of the data service API. Required for "http".
	BaseURL string `yaml:"base_url"`

	// Timeout bounds a single HTTP request. Default: 15s.
	Timeout time.Duration `yaml:"timeout"`

	// ExamChunkSize caps the number of exam IDs sent per request; larger
	// batches are split and fetched concurrently. Default: 20.
	ExamChunkSize int `yaml:"exam_chunk_size"`

	Retry RetryConfig `yaml:"retry"`
}

// RetryConfig configures transport-level retries of transient failures.
// MaxAttempts of 1 disables retrying.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:      "mock",
		Timeout:       15 * time.Second,
		ExamChunkSize: 20,
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// Validate checks that the selected provider is fully configured.
func (c Config) Validate() error {
	switch c.Provider {
	case "http":
		if c.BaseURL == "" {
			return fmt.Errorf("PATHFINDER_API_URL is required for the http provider")
		}
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid base URL %q", c.BaseURL)
		}
	case "mock":
		// Serves the bundled sample catalog.
	default:
		return fmt.Errorf("unknown data provider: %q", c.Provider)
	}
	if c.ExamChunkSize < 1 {
		return fmt.Errorf("exam chunk size must be positive, got %d", c.ExamChunkSize)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}
