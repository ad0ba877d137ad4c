// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/bhencode/lib/bencode"
	"github.com/bureau-foundation/bhencode/lib/compress"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "BHENCODE_CONFIG"

// Config describes how values are decoded, encoded and stored.
type Config struct {
	// Encoding is the charset for text strings. "none" or "raw" keeps
	// decoded strings as bytes.
	// Default: utf-8
	Encoding string `yaml:"encoding"`

	// Strict makes the encoder fail on values it cannot encode. When
	// false they are skipped and logged.
	// Default: true
	Strict bool `yaml:"strict"`

	// MaxDepth bounds container nesting when decoding. Negative
	// disables the limit.
	// Default: 512
	MaxDepth int `yaml:"max_depth"`

	// Compression is applied by WriteFile: "none", "lz4" or "zstd".
	// Default: none
	Compression string `yaml:"compression"`
}

// Default returns the default configuration. Loading starts from these
// values and overrides the fields present in the file.
func Default() *Config {
	return &Config{
		Encoding:    "utf-8",
		Strict:      true,
		MaxDepth:    bencode.DefaultMaxDepth,
		Compression: compress.None.String(),
	}
}

// Load loads configuration from the file named by BHENCODE_CONFIG. If
// the variable is not set, this fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of a bhencode config file", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads and validates configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// loadFile merges a single configuration file into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		// JSON is a subset of YAML, so once comments and trailing
		// commas are gone the same decoder and struct tags apply.
		data = jsonc.ToJSON(data)
	}
	return yaml.Unmarshal(data, c)
}

// Validate checks the configuration for errors and reports all of them.
func (c *Config) Validate() error {
	var errs []error

	if err := bencode.ValidateEncoding(c.Encoding); err != nil {
		errs = append(errs, fmt.Errorf("encoding: %w", err))
	}
	if _, err := compress.ParseTag(c.Compression); err != nil {
		errs = append(errs, fmt.Errorf("compression: %w", err))
	}
	if c.MaxDepth == 0 {
		errs = append(errs, errors.New("max_depth must be positive, or negative for no limit"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Options returns the bencode options this configuration describes.
// Permissive-mode diagnostics go to logger; nil means slog.Default().
func (c *Config) Options(logger *slog.Logger) bencode.Options {
	return bencode.Options{
		Encoding:   c.Encoding,
		Permissive: !c.Strict,
		MaxDepth:   c.MaxDepth,
		Logger:     logger,
	}
}

// CompressionTag returns the configured compression. An unknown name
// yields compress.None; Validate reports it.
func (c *Config) CompressionTag() compress.Tag {
	tag, err := compress.ParseTag(c.Compression)
	if err != nil {
		return compress.None
	}
	return tag
}
