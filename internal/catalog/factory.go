package catalog

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/pathfinder/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	var base Provider

	switch cfg.Provider {
	case "http":
		p, err := NewHTTPProvider(cfg)
		if err != nil {
			return nil, fmt.Errorf("initializing http provider: %w", err)
		}
		base = p
	case "mock":
		base = SampleProvider()
	default:
		return nil, fmt.Errorf("unknown data provider: %q", cfg.Provider)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, eventRepo, logger)
	return WithRetry(logged, cfg.Retry), nil
}
