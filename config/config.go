// Package config provides Viper-based configuration management for canonurl.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/lukemcguire/canonurl/dedup"
	"github.com/lukemcguire/canonurl/urlutil"
)

// Config represents the complete canonurl configuration.
type Config struct {
	Normalizer urlutil.Overrides `mapstructure:"normalizer"`
	Handlers   HandlersConfig    `mapstructure:"handlers"`
	Dedup      DedupConfig       `mapstructure:"dedup"`
	Logging    LoggingConfig     `mapstructure:"logging"`
}

// HandlersConfig selects the built-in component handlers.
type HandlersConfig struct {
	DropPorts    []int `mapstructure:"drop_ports"`
	DropFragment bool  `mapstructure:"drop_fragment"`
}

// DedupConfig contains dedup runner settings.
type DedupConfig struct {
	Concurrency       int     `mapstructure:"concurrency"`
	Approximate       bool    `mapstructure:"approximate"`
	ExpectedItems     uint    `mapstructure:"expected_items"`
	FalsePositiveRate float64 `mapstructure:"false_positive_rate"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// envKeys are bound to the environment explicitly. They have no
// defaults, so viper would not otherwise look them up.
var envKeys = []string{
	"normalizer.fingerprint",
	"normalizer.query.withoutDuplicates",
	"normalizer.query.withoutEmptyPairs",
	"normalizer.query.withoutNumericIndices",
	"normalizer.query.withSortedParams",
	"normalizer.query.withoutTrackingParams",
	"normalizer.query.trackingParamsList",
	"normalizer.path.withoutDotSegments",
	"normalizer.path.withoutEmptySegments",
	"normalizer.path.withoutTrailingSlash",
	"handlers.drop_ports",
}

// Load reads configuration from file and environment variables. A missing
// config file is not an error when cfgFile is empty.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("canonurl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/canonurl")
	}

	// CANONURL_DEDUP_CONCURRENCY, CANONURL_NORMALIZER_FINGERPRINT, ...
	v.SetEnvPrefix("CANONURL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding env %s: %w", key, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration Load produces with no file and no
// environment.
func Default() *Config {
	return &Config{
		Dedup: DedupConfig{
			Concurrency:       8,
			ExpectedItems:     dedup.DefaultExpectedItems,
			FalsePositiveRate: dedup.DefaultFalsePositiveRate,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// setDefaults configures default values. Normalizer keys are left unset so
// that Resolve falls back to the built-in policy.
func setDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("handlers.drop_fragment", false)

	v.SetDefault("dedup.concurrency", def.Dedup.Concurrency)
	v.SetDefault("dedup.approximate", false)
	v.SetDefault("dedup.expected_items", def.Dedup.ExpectedItems)
	v.SetDefault("dedup.false_positive_rate", def.Dedup.FalsePositiveRate)

	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
}

// validate checks the configuration for errors.
func validate(cfg *Config) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s (must be text or json)", cfg.Logging.Format)
	}

	if cfg.Normalizer.Fingerprint != nil {
		if _, err := urlutil.ParseAlgorithm(*cfg.Normalizer.Fingerprint); err != nil {
			return err
		}
	}

	for _, port := range cfg.Handlers.DropPorts {
		if port < 0 || port > 65535 {
			return fmt.Errorf("invalid port in handlers.drop_ports: %d", port)
		}
	}

	if cfg.Dedup.Concurrency < 1 {
		return fmt.Errorf("invalid dedup concurrency: %d (must be at least 1)", cfg.Dedup.Concurrency)
	}
	if cfg.Dedup.ExpectedItems == 0 {
		return errors.New("invalid dedup expected_items: must be greater than 0")
	}
	if cfg.Dedup.FalsePositiveRate <= 0 || cfg.Dedup.FalsePositiveRate >= 1 {
		return fmt.Errorf("invalid dedup false_positive_rate: %g (must be between 0 and 1)", cfg.Dedup.FalsePositiveRate)
	}

	return nil
}

// ComponentHandlers builds the component handlers the configuration selects.
func (c *Config) ComponentHandlers() urlutil.Handlers {
	var h urlutil.Handlers
	if len(c.Handlers.DropPorts) > 0 {
		h.Port = urlutil.DropPorts(c.Handlers.DropPorts...)
	}
	if c.Handlers.DropFragment {
		h.Fragment = urlutil.Drop[string]()
	}
	return h
}

// NewNormalizer builds a Normalizer from the normalizer and handlers sections.
func (c *Config) NewNormalizer() (*urlutil.Normalizer, error) {
	return urlutil.New(c.Normalizer, c.ComponentHandlers())
}

// RunnerConfig converts the dedup section into a dedup.Config.
func (c *Config) RunnerConfig() dedup.Config {
	return dedup.Config{
		Concurrency:       c.Dedup.Concurrency,
		Approximate:       c.Dedup.Approximate,
		ExpectedItems:     c.Dedup.ExpectedItems,
		FalsePositiveRate: c.Dedup.FalsePositiveRate,
	}
}
