package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

const (
	configDirName = "aseq"
	defaultConfig = ".config"
)

var configFiles = []string{
	"config.yaml",
	"config.yml",
}

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the settings that are not part of a scan's arguments.
type Config struct {
	ChunkSize int    `yaml:"chunk_size" default:"1024"`
	ReadAhead bool   `yaml:"read_ahead"`
	Output    Output `yaml:"output"`
	Log       Log    `yaml:"log"`
}

type Output struct {
	Separator string `yaml:"separator" default:"|"`
	Rule      string `yaml:"rule" default:"-----------------"`
}

type Log struct {
	Level  string `yaml:"level" default:"warn"`
	Format string `yaml:"format" default:"text"`
}

// configResult is used to hand the loaded config back from the loading goroutine.
type configResult struct {
	config *Config
	err    error
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		// Only reachable with a malformed default tag.
		panic(err)
	}
	return cfg
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if c.ChunkSize < 1 {
		return fmt.Errorf("chunk_size %d: %w", c.ChunkSize, ErrInvalidConfig)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q: %w", c.Log.Level, ErrInvalidConfig)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q: %w", c.Log.Format, ErrInvalidConfig)
	}
	return nil
}

// getConfigPath retrieves the configuration directory, honouring XDG_CONFIG_HOME.
func getConfigPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configHome = filepath.Join(home, defaultConfig)
	}

	return filepath.Join(configHome, configDirName), nil
}

// LoadFile parses the YAML file at path on top of the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return cfg, nil
}

// Load reads the config from path, or from the user's config directory when
// path is empty, with a timeout. A missing default file yields the defaults;
// a missing explicit file is an error.
func Load(ctx context.Context, path string) (*Config, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result := make(chan configResult, 1)

	go func() {
		var r configResult
		if path != "" {
			r.config, r.err = LoadFile(path)
		} else {
			r.config, r.err = loadConfigFiles(ctx)
		}
		result <- r
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-result:
		return r.config, r.err
	}
}

func loadConfigFiles(ctx context.Context) (*Config, error) {
	configDir, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return Default(), nil
	}

	for _, filename := range configFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cfg, err := LoadFile(filepath.Join(configDir, filename))
		if err == nil {
			return cfg, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config from %s: %w", filename, err)
		}
	}

	return Default(), nil
}
