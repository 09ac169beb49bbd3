package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	logFormatText = "text"
	logFormatJSON = "json"
)

var (
	errInvalidParallelism = errors.New("parallelism must be at least 1")
	errInvalidLogFormat   = errors.New("unsupported log format")
)

type config struct {
	Parallelism int    `mapstructure:"parallelism" default:"1"`
	BlankLines  string `mapstructure:"blank_lines" default:"skip"`
	Echo        bool   `mapstructure:"echo" default:"false"`

	LogLevel  string `mapstructure:"log_level" default:"info"`
	LogFormat string `mapstructure:"log_format" default:"text"`
}

// loadConfig merges defaults, the optional config file at path and any bound
// flags, in increasing order of precedence.
func loadConfig(v *viper.Viper, path string) (*config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config from '%s': %w", path, err)
		}
	}

	config := &config{}

	if err := defaults.Set(config); err != nil {
		return nil, fmt.Errorf("failed to set config defaults: %w", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           config,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create config decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Parallelism < 1 {
		return nil, fmt.Errorf("%w (got %d)", errInvalidParallelism, config.Parallelism)
	}

	return config, nil
}

func newLogger(w io.Writer, config *config) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(config.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level '%s': %w", config.LogLevel, err)
	}

	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(config.LogFormat) {
	case logFormatText:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case logFormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w '%s' (expected '%s' or '%s')", errInvalidLogFormat, config.LogFormat, logFormatText, logFormatJSON)
	}
}
