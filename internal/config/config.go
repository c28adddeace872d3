// Package config loads settings for the portmantout command from an optional
// YAML file. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no config path is given and the file exists.
const DefaultFile = "portmantout.yaml"

// Config holds every setting of the command.
type Config struct {
	// Dictionary is the newline-delimited word list read by build.
	Dictionary string `yaml:"dictionary"`
	// Graph is the graph file written by build and read by check.
	Graph string `yaml:"graph"`

	LogLevel  string `yaml:"log_level"`  // debug|info|warn|error
	LogFormat string `yaml:"log_format"` // auto|text|json

	// Workers bounds how many candidates check verifies at once.
	Workers int `yaml:"workers"`
	// ListMissed is how many missed words check prints per candidate.
	ListMissed int `yaml:"list_missed"`
	// MaximalOnly makes words print only maximal words.
	MaximalOnly bool `yaml:"maximal_only"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Dictionary: "wordlist.asc",
		Graph:      "wordlist.graph",
		LogLevel:   "info",
		LogFormat:  "auto",
		Workers:    runtime.NumCPU(),
		ListMissed: 10,
	}
}

// Load reads path over the defaults. An empty path reads DefaultFile when it
// exists and otherwise returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return cfg, nil
		}
		path = DefaultFile
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	if err := Decode(f, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads YAML from r into cfg, leaving unset keys untouched. Unknown
// keys are rejected. The result is not validated; call Validate after flags
// have been applied.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("log_format %q: want auto, text or json", c.LogFormat)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.ListMissed < 0 {
		return fmt.Errorf("list_missed must not be negative, got %d", c.ListMissed)
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log_level %q: want debug, info, warn or error", s)
}
