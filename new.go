package subfactory

import (
	"go.arcalot.io/log/v2"
	"go.flow.arcalot.io/subfactory/config"
)

// New creates a new engine with the provided configuration.
func New(config *config.Config) (Engine, error) {
	logger := log.New(config.Log)
	return &engine{
		logger: logger,
		config: config,
	}, nil
}
