package main

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/frizinak/chn/chem"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := loadConfig(filepath.Join(dir, "missing.yaml"), false)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ReportFile != "chn_results.txt" {
		t.Fatalf("expected default report file, got %q", cfg.ReportFile)
	}
	if !reflect.DeepEqual(cfg.CombustionElements, []string{"C", "H", "N", "S"}) {
		t.Fatalf("unexpected combustion elements %v", cfg.CombustionElements)
	}

	if _, err := loadConfig(filepath.Join(dir, "missing.yaml"), true); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}

	p := filepath.Join(dir, "config.yaml")
	data := "report_file: lab.txt\ncommon_elements: [C, H, N, O, S]\n"
	if err := os.WriteFile(p, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = loadConfig(p, true)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ReportFile != "lab.txt" {
		t.Fatalf("expected lab.txt, got %q", cfg.ReportFile)
	}
	if !reflect.DeepEqual(cfg.CommonElements, []string{"C", "H", "N", "O", "S"}) {
		t.Fatalf("unexpected common elements %v", cfg.CommonElements)
	}
}

func TestLoadTable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	p := filepath.Join(t.TempDir(), "weights.yaml")
	_ = os.WriteFile(p, []byte("\"D\": {standard: \"2.014\", abundant: \"2.01410178\"}\n"), 0644)

	cfg := &Config{WeightsFile: p}
	cfg.defaults()
	table, err := loadTable(logger, cfg, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := table.Lookup("D"); !ok {
		t.Fatal("override table not merged")
	}
	if _, ok := table.Lookup("C"); !ok {
		t.Fatal("built-in table lost")
	}

	cfg = &Config{CommonElements: []string{"C", "Qq"}}
	cfg.defaults()
	if _, err := loadTable(logger, cfg, false); !errors.As(err, &chem.UnknownElementError{}) {
		t.Fatalf("expected UnknownElementError, got %v", err)
	}
}
