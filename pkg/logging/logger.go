// Package logging builds the engine's zap logger and provides helpers for
// keeping secrets and oversized user text out of log output.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger constructs the root zap logger for the given environment.
// Production environments get JSON output at Info; everything else gets the
// development console encoder at Debug.
func NewLogger(env string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
