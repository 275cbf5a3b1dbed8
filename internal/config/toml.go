// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Busyu BusyuConfig `toml:"busyu"`
	Yoji  YojiConfig  `toml:"yoji"`
	Data  DataConfig  `toml:"data"`
	Log   LogConfig   `toml:"log"`
}

// BusyuConfig maps free-text quiz settings.
type BusyuConfig struct {
	Seconds   *int  `toml:"seconds"`
	Bonus     *int  `toml:"bonus"`
	Unlimited *bool `toml:"unlimited"`
	Hints     *int  `toml:"hints"`
	MinCount  *int  `toml:"min-count"`
}

// YojiConfig maps choice quiz settings.
type YojiConfig struct {
	Level     *float64 `toml:"level"`
	Questions *int     `toml:"questions"`
	Choices   *int     `toml:"choices"`
	Mode      *string  `toml:"mode"`
}

// DataConfig points at an external JSON dataset directory.
type DataConfig struct {
	Dir *string `toml:"dir"`
}

// LogConfig controls the log level and destination.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
