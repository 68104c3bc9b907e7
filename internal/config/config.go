package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/metaconv/pkg/metaconv"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Environment variables that override metaconv.yaml.
const (
	EnvContributorName  = "METACONV_CONTRIBUTOR_NAME"
	EnvContributorEmail = "METACONV_CONTRIBUTOR_EMAIL"
	EnvConnectionString = "METACONV_CONNECTION_STRING"
	EnvDatabaseURL      = "DATABASE_URL"
)

type ContributorConfig struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

type ProjectConfig struct {
	Contributor      ContributorConfig `yaml:"contributor"`
	Table            string            `yaml:"table,omitempty"`
	KeepIntermediate bool              `yaml:"keep_intermediate,omitempty"`
	Jobs             int               `yaml:"jobs,omitempty"`
	Connection       string            `yaml:"connection,omitempty"`
}

// Default returns the settings used when nothing else is configured.
func Default() *ProjectConfig {
	return &ProjectConfig{
		Contributor: ContributorConfig{Name: metaconv.DefaultContributorName},
		Jobs:        1,
	}
}

// Load reads metaconv.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, metaconv.ConfigFileName))
}

// LoadFile reads the config file at path. Unset fields keep their defaults.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", metaconv.ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that yaml decoding cannot.
func (c *ProjectConfig) Validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("%w: jobs must be at least 1, got %d", metaconv.ErrInvalidConfig, c.Jobs)
	}
	return nil
}

// ApplyEnv overrides fields from environment variables looked up with
// lookup (os.LookupEnv in production). Set-but-empty variables count as set.
func (c *ProjectConfig) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvContributorName); ok {
		c.Contributor.Name = v
	}
	if v, ok := lookup(EnvContributorEmail); ok {
		c.Contributor.Email = v
	}
	if v, ok := lookup(EnvConnectionString); ok {
		c.Connection = v
	} else if v, ok := lookup(EnvDatabaseURL); ok {
		c.Connection = v
	}
}

// LoadDotEnv loads variables from the given .env files (".env" when none are
// given) without overriding variables already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("%w: failed to load %s: %v", metaconv.ErrInvalidConfig, f, err)
		}
	}
	return nil
}
