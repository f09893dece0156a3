package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/frizinak/chn/report"
	"gopkg.in/yaml.v3"
)

var (
	cacheDir  string
	configDir string
)

type Config struct {
	ReportFile string `yaml:"report_file"`
	// WeightsFile is a YAML table merged over the built-in one.
	WeightsFile string `yaml:"weights_file"`
	// WeightsURL points at an html page holding an atomic weight table.
	WeightsURL string `yaml:"weights_url"`

	CommonElements     []string `yaml:"common_elements"`
	CombustionElements []string `yaml:"combustion_elements"`
}

func (c *Config) defaults() {
	if c.ReportFile == "" {
		c.ReportFile = report.DefaultFile
	}
	if len(c.CommonElements) == 0 {
		c.CommonElements = []string{"C", "H", "N", "O", "Cl", "F"}
	}
	if len(c.CombustionElements) == 0 {
		c.CombustionElements = []string{"C", "H", "N", "S"}
	}
}

// loadConfig reads path. A missing file is only an error when the user asked
// for it explicitly.
func loadConfig(path string, explicit bool) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			cfg.defaults()
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.defaults()
	return cfg, nil
}

func getCacheDir(subs ...string) string {
	if cacheDir == "" {
		userCacheDir, err := os.UserCacheDir()
		if err != nil {
			userDir, err := os.UserHomeDir()
			if err != nil {
				userDir = os.TempDir()
			}
			userCacheDir = filepath.Join(userDir, ".cache")
		}
		cacheDir = filepath.Join(userCacheDir, "chn")
	}

	j := make([]string, 1+len(subs))
	copy(j[1:], subs)
	j[0] = cacheDir
	return filepath.Join(j...)
}

func getConfigDir(subs ...string) string {
	if configDir == "" {
		userConfigDir, err := os.UserConfigDir()
		if err != nil {
			userDir, err := os.UserHomeDir()
			if err != nil {
				userDir = os.TempDir()
			}
			userConfigDir = filepath.Join(userDir, ".config")
		}
		configDir = filepath.Join(userConfigDir, "chn")
	}

	j := make([]string, 1+len(subs))
	copy(j[1:], subs)
	j[0] = configDir
	return filepath.Join(j...)
}
