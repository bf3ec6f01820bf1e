package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"qabot/internal/domain"
	"qabot/internal/embedding/tfidf"
	"qabot/internal/service"
)

// Environment variables that override file values.
const (
	EnvDataset        = "QABOT_DATASET"
	EnvThreshold      = "QABOT_THRESHOLD"
	EnvFallback       = "QABOT_FALLBACK"
	EnvLogLevel       = "QABOT_LOG_LEVEL"
	EnvLogDirectory   = "QABOT_LOG_DIR"
	EnvSmoothIDF      = "QABOT_SMOOTH_IDF"
	EnvSublinearTF    = "QABOT_SUBLINEAR_TF"
	EnvMinTokenLength = "QABOT_MIN_TOKEN_LENGTH"
)

// DatasetConfig points at the question/answer document.
type DatasetConfig struct {
	Path string `yaml:"path"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type  string        `yaml:"type"`
	TFIDF tfidf.Options `yaml:"tfidf"`
}

// MatcherConfig holds the answer/fallback decision parameters.
type MatcherConfig struct {
	Threshold float64 `yaml:"threshold"`
	Fallback  string  `yaml:"fallback"`
}

// LogConfig configures the process logger. Logging is off unless Directory
// or ConfigFile is set. ConfigFile, when set, is a logger options file and
// takes precedence over Level and Directory.
type LogConfig struct {
	Level      string `yaml:"level"`
	Directory  string `yaml:"directory,omitempty"`
	ConfigFile string `yaml:"config_file,omitempty"`
}

// Enabled reports whether a log destination is configured.
func (c LogConfig) Enabled() bool {
	return c.Directory != "" || c.ConfigFile != ""
}

// UIConfig configures the terminal front end.
type UIConfig struct {
	Title string `yaml:"title"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Dataset  DatasetConfig  `yaml:"dataset"`
	Embedder EmbedderConfig `yaml:"embedder"`
	Matcher  MatcherConfig  `yaml:"matcher"`
	Log      LogConfig      `yaml:"log"`
	UI       UIConfig       `yaml:"ui"`
}

// MatcherOptions converts the matcher section for service.NewMatcher.
func (c *AppConfig) MatcherOptions() service.MatcherOptions {
	return service.MatcherOptions{Threshold: c.Matcher.Threshold, Fallback: c.Matcher.Fallback}
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// Keys absent from the file keep their default values.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrConfiguration, path, err)
	}
	applyConfigDefaults(cfg)
	return cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/qabot/config.yaml.
// If neither exists, it writes defaults to ~/.config/qabot/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyEnv overrides config values from the environment. lookup is usually
// os.LookupEnv. Unparsable values are reported, not ignored.
func ApplyEnv(cfg *AppConfig, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDataset); ok && v != "" {
		cfg.Dataset.Path = v
	}
	if v, ok := lookup(EnvFallback); ok && v != "" {
		cfg.Matcher.Fallback = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLogDirectory); ok && v != "" {
		cfg.Log.Directory = v
	}
	if v, ok := lookup(EnvThreshold); ok && v != "" {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", domain.ErrConfiguration, EnvThreshold, v, err)
		}
		cfg.Matcher.Threshold = f
	}
	if v, ok := lookup(EnvSmoothIDF); ok && v != "" {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", domain.ErrConfiguration, EnvSmoothIDF, v, err)
		}
		cfg.Embedder.TFIDF.SmoothIDF = b
	}
	if v, ok := lookup(EnvSublinearTF); ok && v != "" {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", domain.ErrConfiguration, EnvSublinearTF, v, err)
		}
		cfg.Embedder.TFIDF.SublinearTF = b
	}
	if v, ok := lookup(EnvMinTokenLength); ok && v != "" {
		n, err := cast.ToIntE(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", domain.ErrConfiguration, EnvMinTokenLength, v, err)
		}
		cfg.Embedder.TFIDF.MinTokenLength = n
	}
	return nil
}

var validLogLevels = map[string]struct{}{
	"debug": {}, "info": {}, "warn": {}, "error": {},
}

// Validate checks if the configuration is valid
func Validate(cfg *AppConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", domain.ErrConfiguration)
	}
	if strings.TrimSpace(cfg.Dataset.Path) == "" {
		return fmt.Errorf("%w: dataset.path is required", domain.ErrConfiguration)
	}
	if cfg.Embedder.Type != "tfidf" {
		return fmt.Errorf("%w: unknown embedder: %s", domain.ErrConfiguration, cfg.Embedder.Type)
	}
	if cfg.Embedder.TFIDF.MinTokenLength < 1 {
		return fmt.Errorf("%w: embedder.tfidf.min_token_length must be >= 1, got %d",
			domain.ErrConfiguration, cfg.Embedder.TFIDF.MinTokenLength)
	}
	if cfg.Matcher.Threshold < 0 || cfg.Matcher.Threshold > 1 {
		return fmt.Errorf("%w: matcher.threshold must be within [0, 1], got %v",
			domain.ErrConfiguration, cfg.Matcher.Threshold)
	}
	if _, ok := validLogLevels[cfg.Log.Level]; !ok {
		return fmt.Errorf("%w: unknown log level: %s", domain.ErrConfiguration, cfg.Log.Level)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qabot", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Dataset:  DatasetConfig{Path: "dataset.json"},
		Embedder: EmbedderConfig{Type: "tfidf", TFIDF: tfidf.DefaultOptions()},
		Matcher:  MatcherConfig{Threshold: service.DefaultThreshold, Fallback: service.DefaultFallback},
		Log:      LogConfig{Level: "info"},
		UI:       UIConfig{Title: "Chatbot"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "tfidf"
	}
	if cfg.Embedder.TFIDF.MinTokenLength == 0 {
		cfg.Embedder.TFIDF.MinTokenLength = tfidf.DefaultOptions().MinTokenLength
	}
	if cfg.Matcher.Fallback == "" {
		cfg.Matcher.Fallback = service.DefaultFallback
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if cfg.UI.Title == "" {
		cfg.UI.Title = "Chatbot"
	}
}
