// Package config loads runtime settings with Viper.
//
// Layering is built-in defaults < YAML config file < VISIT_* environment
// variables (VISIT_WEBCLIENT_BACKEND overrides webclient.backend). The
// visited URL is not configurable.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/raysh454/visit/internal/logging"
	"github.com/raysh454/visit/internal/webclient"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "VISIT"

// Config holds all application configuration
type Config struct {
	WebClient  WebClientConfig  `mapstructure:"webclient"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	DemoServer DemoServerConfig `mapstructure:"demoserver"`
}

// WebClientConfig selects and tunes the request backend.
type WebClientConfig struct {
	Backend   string        `mapstructure:"backend"`
	Timeout   time.Duration `mapstructure:"timeout"`
	IdleAfter time.Duration `mapstructure:"idle_after"`
	Headless  bool          `mapstructure:"headless"`
}

// LoggingConfig controls diagnostic output on stderr.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DemoServerConfig configures cmd/demoserver.
type DemoServerConfig struct {
	Port int `mapstructure:"port"`
}

// ToWebClient converts the loaded settings for webclient.NewWebClient.
func (c WebClientConfig) ToWebClient() webclient.Config {
	return webclient.Config{
		Client:    webclient.Client(strings.ToLower(strings.TrimSpace(c.Backend))),
		Timeout:   c.Timeout,
		IdleAfter: c.IdleAfter,
		Headless:  c.Headless,
	}
}

// ToLogging converts the loaded settings for logging.NewLogger.
func (c LoggingConfig) ToLogging(app string) logging.Options {
	return logging.Options{Format: c.Format, Level: c.Level, App: app}
}

var envKeys = []string{
	"webclient.backend",
	"webclient.timeout",
	"webclient.idle_after",
	"webclient.headless",
	"logging.level",
	"logging.format",
	"demoserver.port",
}

// bindEnvVars binds every key explicitly; AutomaticEnv alone is not seen
// by Unmarshal for keys that only have defaults.
func bindEnvVars(v *viper.Viper) error {
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind env var %q: %w", key, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("webclient.backend", string(webclient.ClientNetHTTP))
	v.SetDefault("webclient.timeout", "0s")
	v.SetDefault("webclient.idle_after", "2s")
	v.SetDefault("webclient.headless", true)

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")

	v.SetDefault("demoserver.port", 9999)
}

// Load loads configuration from file and environment variables. An empty
// configPath searches for visit.yaml in the working directory and
// $HOME/.config/visit; a missing file there is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("visit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/visit")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindEnvVars(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration without reading files or env.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults are static and always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks the settings the visit command uses.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(strings.TrimSpace(c.WebClient.Backend)) {
	case "", string(webclient.ClientNetHTTP), string(webclient.ClientChromedp):
	default:
		errs = append(errs, fmt.Errorf("webclient.backend: unknown backend %q", c.WebClient.Backend))
	}
	if c.WebClient.Timeout < 0 {
		errs = append(errs, fmt.Errorf("webclient.timeout: must not be negative"))
	}
	if c.WebClient.IdleAfter < 0 {
		errs = append(errs, fmt.Errorf("webclient.idle_after: must not be negative"))
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format: must be text or json, got %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// Validate checks the demo server settings. Load leaves this to
// cmd/demoserver so visit never fails on them.
func (c DemoServerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("demoserver.port: %d out of range", c.Port)
	}
	return nil
}
