// Command chn computes formula weights, exact masses and elemental
// percentages and compares them against combustion analysis results.
//
// Usage:
//
//	chn                              # interactive session
//	chn -o results.txt               # change the default report file
//	chn -weights my.yaml             # merge a custom atomic weight table
//	chn -weights-url https://...     # use (and cache) a published table
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/frizinak/chn/chem"
	"github.com/frizinak/chn/weights"
)

func ex(logger *slog.Logger, err error) {
	if err == nil {
		return
	}
	logger.Error("chn: fatal", "error", err)
	os.Exit(1)
}

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default: "+getConfigDir("config.yaml")+")")
	weightsFile := flag.String("weights", "", "YAML atomic weight table merged over the built-in one")
	weightsURL := flag.String("weights-url", "", "html page with a symbol/standard/abundant atomic weight table")
	refresh := flag.Bool("refresh", false, "download -weights-url again instead of using the cached copy")
	output := flag.String("o", "", "default report file")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := resolveConfig(*configPath, *weightsFile, *weightsURL, *output)
	ex(logger, err)

	table, err := loadTable(logger, cfg, *refresh)
	ex(logger, err)

	sh := newShell(os.Stdin, os.Stdout, logger, cfg, table)
	sh.rule = ruleWidth(termWidth())
	ex(logger, sh.run())
}

func resolveConfig(configPath, weightsFile, weightsURL, output string) (*Config, error) {
	explicit := configPath != ""
	if !explicit {
		configPath = getConfigDir("config.yaml")
	}
	cfg, err := loadConfig(configPath, explicit)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if weightsFile != "" {
		cfg.WeightsFile = weightsFile
	}
	if weightsURL != "" {
		cfg.WeightsURL = weightsURL
	}
	if output != "" {
		cfg.ReportFile = output
	}

	return cfg, nil
}

// loadTable layers the built-in table, the downloaded table and the local
// override file, in that order.
func loadTable(logger *slog.Logger, cfg *Config, refresh bool) (chem.Weights, error) {
	table, err := weights.Default()
	if err != nil {
		return nil, fmt.Errorf("built-in weights: %w", err)
	}
	logger.Debug("weights loaded", "source", "built-in", "elements", len(table))

	if cfg.WeightsURL != "" {
		dir := getCacheDir("weights")
		if refresh {
			err := os.Remove(getCacheDir("weights", weights.CacheName(cfg.WeightsURL)))
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
		w, err := weights.Get(dir, cfg.WeightsURL)
		if err != nil {
			return nil, fmt.Errorf("weights %s: %w", cfg.WeightsURL, err)
		}
		logger.Debug("weights loaded", "source", cfg.WeightsURL, "elements", len(w))
		table = weights.Merge(table, w)
	}

	if cfg.WeightsFile != "" {
		w, err := weights.LoadFile(cfg.WeightsFile)
		if err != nil {
			return nil, fmt.Errorf("weights: %w", err)
		}
		logger.Debug("weights loaded", "source", cfg.WeightsFile, "elements", len(w))
		table = weights.Merge(table, w)
	}

	for _, list := range [][]string{cfg.CommonElements, cfg.CombustionElements} {
		for _, sym := range list {
			if _, ok := table.Lookup(sym); !ok {
				return nil, fmt.Errorf("config: %w", chem.UnknownElementError{Symbol: sym})
			}
		}
	}

	return table, nil
}
