package catalog

import (
	"testing"
	"time"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     func() Config
		wantErr bool
	}{
		{"mock", DefaultConfig, false},
		{"http", func() Config {
			c := DefaultConfig()
			c.Provider = "http"
			c.BaseURL = "https://api.example.com/v1"
			return c
		}, false},
		{"unknown", func() Config {
			c := DefaultConfig()
			c.Provider = "carrier-pigeon"
			return c
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.cfg(), &memEventRepo{}, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && p == nil {
				t.Fatal("NewProvider() returned nil provider")
			}
		})
	}
}

func TestNewProvider_RetryWrapping(t *testing.T) {
	cfg := DefaultConfig()
	p, err := NewProvider(cfg, &memEventRepo{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(*LoggingProvider); !ok {
		t.Errorf("expected logging provider when retries are disabled, got %T", p)
	}

	cfg.Retry.MaxAttempts = 3
	p, err = NewProvider(cfg, &memEventRepo{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(*RetryProvider); !ok {
		t.Errorf("expected retry provider, got %T", p)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"http without url", func(c *Config) { c.Provider = "http" }, true},
		{"http relative url", func(c *Config) { c.Provider, c.BaseURL = "http", "/api" }, true},
		{"http ok", func(c *Config) { c.Provider, c.BaseURL = "http", "http://localhost:8080" }, false},
		{"zero chunk", func(c *Config) { c.ExamChunkSize = 0 }, true},
		{"zero attempts", func(c *Config) { c.Retry.MaxAttempts = 0 }, true},
		{"unknown provider", func(c *Config) { c.Provider = "ftp" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(&c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", c.Timeout)
	}
	if c.Retry.MaxAttempts != 1 {
		t.Errorf("Retry.MaxAttempts = %d, want 1", c.Retry.MaxAttempts)
	}
}
