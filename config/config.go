package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFileName = "config.yaml"
	DefaultLogFileName    = "pdfqa.log"
	DefaultBackendURL     = "http://localhost:8000"

	// BackendURLEnv overrides the backend url stored in the config file.
	BackendURLEnv = "PDFQA_BACKEND_URL"
)

var (
	DefaultConfigDir      = os.ExpandEnv("$HOME/.config/pdfqa")
	DefaultConfigFilePath = filepath.Join(DefaultConfigDir, DefaultConfigFileName)
	DefaultLogFilePath    = filepath.Join(DefaultConfigDir, DefaultLogFileName)
)

type Config struct {
	BackendURL string `yaml:"backend_url,omitempty"`
}

func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFilePath)
}

func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := yaml.NewEncoder(f).Encode(c); err != nil {
		return err
	}
	return nil
}

func LoadFromFile() (*Config, error) {
	return LoadFrom(DefaultConfigFilePath)
}

func LoadFrom(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var c Config
	if err := yaml.NewDecoder(f).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadEnv reads a .env file from the working directory if one exists.
// Variables already set in the environment win.
func LoadEnv() error {
	err := godotenv.Load()
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Resolve returns the effective configuration for path.
// The backend url comes from, in order: the environment, the config file, the default.
// A missing config file is not an error.
func Resolve(path string) (*Config, error) {
	cfg, err := LoadFrom(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if cfg == nil {
		cfg = &Config{}
	}

	if v := strings.TrimSpace(os.Getenv(BackendURLEnv)); v != "" {
		cfg.BackendURL = v
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = DefaultBackendURL
	}
	cfg.BackendURL = strings.TrimSuffix(cfg.BackendURL, "/")
	return cfg, nil
}
