package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the optional config file. Absent keys stay nil so that
// only the keys present in the file take effect.
//
//	workers: 4
//	max_expansions: 1000000
//	max_cost: 25
//	log_level: debug
//	format: json
type FileConfig struct {
	Workers       *int    `yaml:"workers" json:"workers"`
	MaxExpansions *int    `yaml:"max_expansions" json:"max_expansions"`
	MaxCost       *int    `yaml:"max_cost" json:"max_cost"`
	LogLevel      *string `yaml:"log_level" json:"log_level"`
	Format        *string `yaml:"format" json:"format"`
}

// LoadConfig reads a config file. Files ending in .json are decoded as JSON,
// anything else as YAML. An empty path yields an empty config; a missing
// explicit path is an error.
func LoadConfig(path string) (*FileConfig, error) {
	cfg := &FileConfig{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %s not found", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}
