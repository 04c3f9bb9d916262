package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".typefacet.yaml"

// Config holds CLI settings read from the config file. Flags override it.
type Config struct {
	Lang               string `yaml:"lang"`
	LogLevel           string `yaml:"logLevel"`
	Format             string `yaml:"format"`
	Watch              bool   `yaml:"watch"`
	ClosedObjects      bool   `yaml:"closedObjects"`
	AllowDuplicateKeys bool   `yaml:"allowDuplicateKeys"`
}

func defaultConfig() *Config {
	return &Config{Lang: "en", LogLevel: "info", Format: formatText}
}

// loadConfig reads path over the defaults. A missing file is not an error
// when path is the default location.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == defaultConfigFile {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Lang {
	case "en", "ja":
	default:
		return fmt.Errorf("unsupported lang %q", c.Lang)
	}
	switch c.Format {
	case formatText, formatJSON:
	default:
		return fmt.Errorf("unsupported format %q", c.Format)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// newLogger returns a console logger on w at the configured level.
func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(lvl).
		With().Timestamp().Logger()
}
