package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors the CLI flag surface. Fields left at their zero value in
// the file keep the flag defaults; Padding and Parallel are pointers so a
// written zero/false is distinguishable from an absent key.
type Config struct {
	FontSize    int    `yaml:"font_size"`
	FontColor   string `yaml:"font_color"`
	Position    string `yaml:"position"`
	CustomFont  string `yaml:"custom_font"`
	DateFormat  string `yaml:"date_format"`
	UnknownText string `yaml:"unknown_text"`
	Padding     *int   `yaml:"padding"`
	Parallel    *bool  `yaml:"parallel"`
	Workers     int    `yaml:"workers"`
	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file"`
}

// Load reads a YAML defaults file. The file was requested explicitly, so
// a missing or malformed one is an error rather than a silent default.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
