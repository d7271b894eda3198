// Package config loads the .htmldsl.yaml project file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/kilianc/htmldsl/internal/htmldsl/compile"
)

// FileName is looked up in the module root.
const FileName = ".htmldsl.yaml"

// Config holds generator settings. Command line flags take precedence.
type Config struct {
	Format    string      `yaml:"format"`    // text, html
	Extension string      `yaml:"extension"` // overrides the format's default suffix
	Workers   int         `yaml:"workers"`   // parallel files; 0 means one per CPU
	LogLevel  string      `yaml:"log_level"` // debug, info, warn, error
	Watch     WatchConfig `yaml:"watch"`
}

// WatchConfig configures the playground watcher.
type WatchConfig struct {
	Debounce string `yaml:"debounce"` // e.g. 300ms
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		Format:   string(compile.FormatText),
		LogLevel: "info",
		Watch: WatchConfig{
			Debounce: "300ms",
		},
	}
}

// Load reads path on top of Default. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromRoot loads FileName from the given directory.
func LoadFromRoot(root string) (*Config, error) {
	return Load(filepath.Join(root, FileName))
}

// Validate checks every field that has a restricted syntax.
func (c *Config) Validate() error {
	if _, err := compile.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	return nil
}

// OutputFormat returns the parsed Format.
func (c *Config) OutputFormat() compile.Format {
	f, err := compile.ParseFormat(c.Format)
	if err != nil {
		return compile.FormatText
	}
	return f
}

// OutputExtension returns Extension, or the default suffix of the format.
func (c *Config) OutputExtension() string {
	if c.Extension != "" {
		return c.Extension
	}
	return c.OutputFormat().Extension()
}

// WorkerLimit returns Workers, or the number of CPUs when Workers is 0.
func (c *Config) WorkerLimit() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// DebounceDuration parses Watch.Debounce. The empty string means no debounce.
func (c *Config) DebounceDuration() (time.Duration, error) {
	if c.Watch.Debounce == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0, fmt.Errorf("watch.debounce: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("watch.debounce must not be negative, got %s", d)
	}
	return d, nil
}
