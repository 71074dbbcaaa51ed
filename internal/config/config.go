// Package config loads the application configuration and the classifier
// dictionaries. Dictionary problems are configuration bugs, so loading
// fails fast instead of surfacing per-page at runtime.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel = "info"
)

// Config holds all runtime configuration for the pagewise batch runner.
type Config struct {
	// Input configuration.
	LayoutPath    string // layout batch: .hocr/.html, .json dump, or .pdf
	DictionaryDir string // optional directory with dictionary JSON files

	// Output configuration.
	OutputPath string // segment JSON destination; empty means stdout
	SplitDir   string // when set, per-segment PDFs are written here
	SourcePDF  string // PDF to slice when SplitDir is set

	// Behavior.
	AutomaticSplit bool

	// Application configuration.
	Version  string
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		AutomaticSplit: true,
		Version:        "1.0.0",
		LogLevel:       DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and environment variables and
// returns a validated configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if cfg.LayoutPath != "" {
		if expanded, err := filepath.Abs(cfg.LayoutPath); err == nil {
			cfg.LayoutPath = expanded
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("PAGEWISE")
	viper.AutomaticEnv()

	viper.SetDefault("layout", cfg.LayoutPath)
	viper.SetDefault("dicts", cfg.DictionaryDir)
	viper.SetDefault("out", cfg.OutputPath)
	viper.SetDefault("splitdir", cfg.SplitDir)
	viper.SetDefault("pdf", cfg.SourcePDF)
	viper.SetDefault("autosplit", cfg.AutomaticSplit)
	viper.SetDefault("loglevel", cfg.LogLevel)
}

func defineCommandLineFlags(cfg *Config) {
	pflag.String("layout", cfg.LayoutPath, "Layout batch to classify (.hocr/.html, .json, or .pdf)")
	pflag.String("dicts", cfg.DictionaryDir, "Directory with dictionary JSON files (built-in defaults when empty)")
	pflag.String("out", cfg.OutputPath, "Write segment JSON to this file instead of stdout")
	pflag.String("splitdir", cfg.SplitDir, "Write one PDF per detected segment into this directory")
	pflag.String("pdf", cfg.SourcePDF, "Source PDF to slice when --splitdir is set")
	pflag.Bool("autosplit", cfg.AutomaticSplit, "Reconcile page numbers and split into documents")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

func bindFlagsToViper() {
	_ = viper.BindPFlag("layout", pflag.Lookup("layout"))
	_ = viper.BindPFlag("dicts", pflag.Lookup("dicts"))
	_ = viper.BindPFlag("out", pflag.Lookup("out"))
	_ = viper.BindPFlag("splitdir", pflag.Lookup("splitdir"))
	_ = viper.BindPFlag("pdf", pflag.Lookup("pdf"))
	_ = viper.BindPFlag("autosplit", pflag.Lookup("autosplit"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
}

func populateConfigFromViper(cfg *Config) {
	cfg.LayoutPath = viper.GetString("layout")
	cfg.DictionaryDir = viper.GetString("dicts")
	cfg.OutputPath = viper.GetString("out")
	cfg.SplitDir = viper.GetString("splitdir")
	cfg.SourcePDF = viper.GetString("pdf")
	cfg.AutomaticSplit = viper.GetBool("autosplit")
	cfg.LogLevel = viper.GetString("loglevel")
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.LayoutPath == "" {
		return errors.New("layout path cannot be empty")
	}
	if _, err := os.Stat(c.LayoutPath); err != nil {
		return fmt.Errorf("cannot access layout path %s: %w", c.LayoutPath, err)
	}
	if c.DictionaryDir != "" {
		if _, err := os.Stat(c.DictionaryDir); err != nil {
			return fmt.Errorf("cannot access dictionary directory %s: %w", c.DictionaryDir, err)
		}
	}
	if c.SplitDir != "" && c.SourcePDF == "" {
		return errors.New("splitdir requires a source PDF (--pdf)")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}
	return nil
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}
