package ecs

import (
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// worldConfig holds the configuration for a World that can be set through environment variables.
type worldConfig struct {
	// Log level ("debug", "info", "warn", "error", "disabled").
	LogLevel string `env:"ECS_LOG_LEVEL" envDefault:"info"`

	// Log format ("json", "pretty").
	LogFormat string `env:"ECS_LOG_FORMAT" envDefault:"json"`

	// Number of entities the backend reserves metadata for up front.
	EntityCapacity int `env:"ECS_ENTITY_CAPACITY" envDefault:"0"`
}

// loadWorldConfig loads the world configuration from environment variables.
func loadWorldConfig() (worldConfig, error) {
	cfg := worldConfig{}

	if err := env.Parse(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse world config")
	}

	if err := cfg.validate(); err != nil {
		return cfg, eris.Wrap(err, "failed to validate world config")
	}

	return cfg, nil
}

// validate performs validation on the loaded configuration.
func (cfg *worldConfig) validate() error {
	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	if ParseLogFormat(cfg.LogFormat) == LogFormatUndefined {
		return eris.Errorf("invalid log format: %s (must be 'json' or 'pretty')", cfg.LogFormat)
	}
	if cfg.EntityCapacity < 0 {
		return eris.New("entity capacity cannot be negative")
	}
	return nil
}

// applyToOptions applies the configuration values to the given WorldOptions.
func (cfg *worldConfig) applyToOptions(opt *WorldOptions) {
	opt.LogLevel = cfg.LogLevel
	opt.LogFormat = ParseLogFormat(cfg.LogFormat)
	opt.EntityCapacity = cfg.EntityCapacity
}

// WorldOptions configures NewWorld. Zero fields keep the value loaded from the environment or the
// built-in default.
type WorldOptions struct {
	Backend        Backend         // Storage backend, defaults to a SparseSetBackend
	Logger         *zerolog.Logger // Logger to use instead of building one from LogLevel/LogFormat
	LogLevel       string          // zerolog level name
	LogFormat      LogFormat       // Output format of the built logger
	EntityCapacity int             // Initial entity capacity of the default backend
}

// newDefaultWorldOptions creates WorldOptions with default values.
func newDefaultWorldOptions() WorldOptions {
	return WorldOptions{
		Backend:        nil,
		Logger:         nil,
		LogLevel:       zerolog.InfoLevel.String(),
		LogFormat:      LogFormatJSON,
		EntityCapacity: 0,
	}
}

// apply merges the given options into the current options, overriding non-zero values.
func (opt *WorldOptions) apply(newOpt WorldOptions) {
	if newOpt.Backend != nil {
		opt.Backend = newOpt.Backend
	}
	if newOpt.Logger != nil {
		opt.Logger = newOpt.Logger
	}
	if newOpt.LogLevel != "" {
		opt.LogLevel = newOpt.LogLevel
	}
	if newOpt.LogFormat != LogFormatUndefined {
		opt.LogFormat = newOpt.LogFormat
	}
	if newOpt.EntityCapacity != 0 {
		opt.EntityCapacity = newOpt.EntityCapacity
	}
}

// validate checks that all options are valid.
func (opt *WorldOptions) validate() error {
	if err := validateLogLevel(opt.LogLevel); err != nil {
		return err
	}
	if opt.LogFormat == LogFormatUndefined {
		return eris.New("invalid log format")
	}
	if opt.EntityCapacity < 0 {
		return eris.New("entity capacity cannot be negative")
	}
	return nil
}

func validateLogLevel(level string) error {
	if _, err := zerolog.ParseLevel(strings.ToLower(level)); err != nil {
		return eris.Errorf("invalid log level: %s (must be 'debug', 'info', 'warn', 'error' or 'disabled')", level)
	}
	return nil
}
