package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config.yaml"
	dirMode        = 0700
	fileMode       = 0600

	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrInvalidFormat is returned for output formats other than json or yaml.
var ErrInvalidFormat = errors.New("invalid output format")

// Config holds presentation settings. The strength rules are fixed and
// intentionally absent.
type Config struct {
	Format      string `yaml:"format"`
	LogLevel    string `yaml:"log_level"`
	Color       bool   `yaml:"color"`
	StartMasked bool   `yaml:"start_masked"`
	Workers     int    `yaml:"workers"`
}

// Default returns the config written on first run.
func Default() *Config {
	return &Config{
		Format:      FormatJSON,
		LogLevel:    "info",
		Color:       true,
		StartMasked: true,
		Workers:     0,
	}
}

// Validate normalizes the format and checks the remaining fields.
func (c *Config) Validate() error {
	f, err := ParseFormat(c.Format)
	if err != nil {
		return err
	}
	c.Format = f

	if c.Workers < 0 {
		return fmt.Errorf("workers must be zero or positive: %d", c.Workers)
	}
	return nil
}

// ParseFormat maps a user supplied format to FormatJSON or FormatYAML.
// An empty value selects JSON.
func ParseFormat(v string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, v)
	}
}

// Path returns the config file path inside dirPath.
func Path(dirPath string) string {
	return filepath.Join(dirPath, configFileName)
}

// Save writes the config into dirPath.
func Save(dirPath string, c *Config) error {
	if dirPath == "" {
		return errors.New("config directory required")
	}
	if c == nil {
		return errors.New("config required")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(Path(dirPath), b, fileMode); err != nil {
		return fmt.Errorf("writing config file %s: %w", Path(dirPath), err)
	}
	return nil
}

// ReadOrCreate reads the config from dirPath, creating the directory and a
// default config when either is missing.
func ReadOrCreate(dirPath string) (*Config, error) {
	if dirPath == "" {
		return nil, errors.New("config directory required")
	}

	if _, err := os.Stat(dirPath); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating config dir", "path", dirPath)
		if err := os.MkdirAll(dirPath, dirMode); err != nil {
			return nil, fmt.Errorf("creating dir %s: %w", dirPath, err)
		}
	}

	path := Path(dirPath)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating default config", "path", path)
		if err := Save(dirPath, Default()); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("unmarshaling config file %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file %s: %w", path, err)
	}
	return c, nil
}

// GetOrCreateHomeDir returns the app directory under the user home, creating
// it when needed. The created flag reports whether the directory was new.
func GetOrCreateHomeDir(name string) (path string, created bool, err error) {
	if name == "" {
		return "", false, errors.New("name cannot be empty")
	}

	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("getting user home dir: %w", err)
	}

	dir := filepath.Join(home, name)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating dir", "path", dir)
		if err := os.Mkdir(dir, dirMode); err != nil {
			return "", false, fmt.Errorf("creating dir %s: %w", dir, err)
		}
		created = true
	}
	return dir, created, nil
}
