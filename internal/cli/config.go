package cli

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIURL   string `yaml:"api_url"`
	LogLevel string `yaml:"log_level"`
	Storage  struct {
		Driver  string `yaml:"driver"`
		Path    string `yaml:"path"`
		Encrypt bool   `yaml:"encrypt"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"storage"`
	HTTP struct {
		Timeout string `yaml:"timeout"`
	} `yaml:"http"`
}

func defaultConfig() Config {
	cfg := Config{APIURL: "http://localhost:5000", LogLevel: "warn"}
	cfg.Storage.Driver = "file"
	cfg.Storage.Path = filepath.Join(configDir(), "session.json")
	cfg.HTTP.Timeout = "10s"
	return cfg
}

// LoadConfig reads YAML from path over the defaults. A missing file is not an
// error.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Duration parses a duration string or returns the fallback if empty.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "quizctl")
	}
	return ".quizctl"
}

func defaultConfigPath() string {
	if p := os.Getenv("QUIZCTL_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(configDir(), "config.yaml")
}
