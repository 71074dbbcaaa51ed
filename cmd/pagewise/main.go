package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/icaplabs/pagewise/internal/classify"
	"github.com/icaplabs/pagewise/internal/config"
	"github.com/icaplabs/pagewise/internal/export"
	"github.com/icaplabs/pagewise/internal/layout"
)

var (
	version   = "dev"     // set by build flags
	buildTime = "unknown" // set by build flags
)

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if version != "dev" {
		cfg.Version = version
	}

	logger := setupLogging(cfg)

	if err := run(cfg, logger); err != nil {
		logger.Error("batch failed", "error", err)
		os.Exit(1)
	}
}

func setupLogging(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func run(cfg *config.Config, logger *slog.Logger) error {
	dicts, err := loadDictionaries(cfg)
	if err != nil {
		return err
	}

	pages, err := loadLayout(cfg.LayoutPath)
	if err != nil {
		return err
	}
	logger.Info("layout loaded", "path", cfg.LayoutPath, "pages", len(pages))

	pipeline := classify.New(classify.Config{
		Categories: dicts.Master,
		Custom:     dicts.Custom,
		Matrix:     dicts.MemoryPoints,
		Directions: dicts.Directions,
		Thresholds: classify.DefaultThresholds(),
		Logger:     logger,
	})

	inputs := make([]classify.PageInput, len(pages))
	for i, p := range pages {
		inputs[i] = classify.PageInput{Index: p.Index, Layout: p}
	}

	result, err := pipeline.Run(inputs, nil, cfg.AutomaticSplit)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}
	logger.Info("batch classified", "segments", len(result.Segments))

	if err := writeResult(cfg, result); err != nil {
		return err
	}

	if cfg.SplitDir != "" {
		paths, err := export.WriteSegments(cfg.SourcePDF, cfg.SplitDir, result.Segments)
		if err != nil {
			return err
		}
		logger.Info("segments written", "dir", cfg.SplitDir, "files", len(paths))
	}
	return nil
}

func loadDictionaries(cfg *config.Config) (*config.Dictionaries, error) {
	if cfg.DictionaryDir == "" {
		return config.DefaultDictionaries(), nil
	}
	return config.LoadDictionaries(cfg.DictionaryDir)
}

func loadLayout(path string) ([]*layout.Page, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".pdf" {
		return layout.PagesFromPDF(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read layout %s: %w", path, err)
	}
	switch ext {
	case ".json":
		return layout.ParseBatch(data)
	case ".hocr", ".html", ".htm", ".xml":
		return layout.ParseHOCR(data)
	default:
		return nil, fmt.Errorf("unsupported layout format: %s", path)
	}
}

func writeResult(cfg *config.Config, result *classify.BatchResult) error {
	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode result: %w", err)
	}
	encoded = append(encoded, '\n')

	if cfg.OutputPath == "" {
		_, err = os.Stdout.Write(encoded)
		return err
	}
	if err := os.WriteFile(cfg.OutputPath, encoded, 0o644); err != nil {
		return fmt.Errorf("cannot write result to %s: %w", cfg.OutputPath, err)
	}
	return nil
}

func printVersion() {
	fmt.Printf("pagewise document classifier\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
