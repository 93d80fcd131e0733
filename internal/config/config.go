// Package config loads server and simulation settings with viper
package config

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/arychagov/w40k/internal/entities/rules"
	"github.com/arychagov/w40k/internal/errors"
)

// EnvPrefix is prepended to every environment override, e.g. W40K_SERVER_GRPC_PORT
const EnvPrefix = "W40K"

// ServerConfig holds the listener settings
type ServerConfig struct {
	GRPCPort int    `mapstructure:"grpc_port"`
	HTTPAddr string `mapstructure:"http_addr"`
}

// SimulationConfig holds batch settings
type SimulationConfig struct {
	// Trials per batch
	Trials int `mapstructure:"trials"`
	// ModifierThresholds is "legacy" or "at_least"
	ModifierThresholds string `mapstructure:"modifier_thresholds"`
}

// Ordering returns the parsed threshold ordering
func (s SimulationConfig) Ordering() rules.Ordering {
	ordering, err := rules.ParseOrdering(s.ModifierThresholds)
	if err != nil {
		return rules.OrderingLegacy
	}
	return ordering
}

// RedisConfig holds the summary broadcast settings. An empty Addr disables it.
type RedisConfig struct {
	Addr    string `mapstructure:"addr"`
	Channel string `mapstructure:"channel"`
}

// Enabled reports whether summaries are broadcast over Redis
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// LoggingConfig holds structured logging settings
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`
	// Format is json or text
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// Validate collects every configuration violation
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("server.grpc_port", c.Server.GRPCPort, 1, 65535, vb)
	errors.ValidateRequired("server.http_addr", c.Server.HTTPAddr, vb)

	errors.ValidateRange("simulation.trials", c.Simulation.Trials, 1, 1_000_000, vb)
	if _, err := rules.ParseOrdering(c.Simulation.ModifierThresholds); err != nil {
		vb.InvalidField("simulation.modifier_thresholds", errors.GetMessage(err))
	}

	if c.Redis.Enabled() {
		errors.ValidateRequired("redis.channel", c.Redis.Channel, vb)
	}

	errors.ValidateEnum("logging.level", c.Logging.Level, []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("logging.format", c.Logging.Format, []string{"json", "text"}, vb)

	return vb.Build()
}

// New returns a viper instance with defaults and environment overrides
// applied. Callers may bind flags onto it before calling FromViper.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Load reads the optional YAML file at path, applies environment overrides
// and validates the result. An empty path uses defaults and environment only.
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidConfiguration, "failed to read config file")
		}
	}
	return FromViper(v)
}

// FromViper builds a Config from an already-configured viper instance
func FromViper(v *viper.Viper) (*Config, error) {
	if v == nil {
		return nil, errors.InvalidArgument("viper instance is required")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidConfiguration, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &cfg, nil
}

// NewLogger builds a slog logger writing to w
func (l LoggingConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.level()}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (l LoggingConfig) level() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.grpc_port", 50051)
	v.SetDefault("server.http_addr", ":8080")

	v.SetDefault("simulation.trials", 10000)
	v.SetDefault("simulation.modifier_thresholds", "legacy")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.channel", "w40k:summaries")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}
