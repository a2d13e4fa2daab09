package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configDirName  = ".knowva_cli"
	configFileName = "config.json"

	// Environment overrides applied after the file is loaded.
	EnvEndpoint = "KNOWVA_ENDPOINT"
	EnvLogLevel = "KNOWVA_LOG_LEVEL"
)

// Config represents the application configuration
type Config struct {
	Endpoint              string `json:"endpoint" yaml:"endpoint"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds" yaml:"request_timeout_seconds"`

	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle" yaml:"subtitle"`
	Footer   string `json:"footer" yaml:"footer"`

	Markdown      bool   `json:"markdown" yaml:"markdown"`
	MarkdownStyle string `json:"markdown_style" yaml:"markdown_style"`

	TranscriptDir    string `json:"transcript_dir" yaml:"transcript_dir"`
	TranscriptFormat string `json:"transcript_format" yaml:"transcript_format"`

	LogLevel  string `json:"log_level" yaml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format"`
	LogFile   string `json:"log_file" yaml:"log_file"`
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		Endpoint:              "http://localhost:8000/chat",
		RequestTimeoutSeconds: 0,
		Title:                 "Knowva",
		Subtitle:              "Ask questions about Angel One services and insurance products",
		Footer:                "Powered by RAG Technology",
		Markdown:              false,
		MarkdownStyle:         "dark",
		TranscriptDir:         filepath.Join(baseDir(), "transcripts"),
		TranscriptFormat:      "markdown",
		LogLevel:              "info",
		LogFormat:             "json",
		LogFile:               "",
	}
}

// Load loads configuration from the specified path.
// If the file doesn't exist, creates one with default values.
// Fields missing from an existing file keep their defaults.
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(configPath, cfg); err != nil {
				return Config{}, fmt.Errorf("failed to create default config: %w", err)
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if isYAML(configPath) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to the specified path
func Save(configPath string, cfg Config) error {
	var (
		data []byte
		err  error
	)
	if isYAML(configPath) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields from KNOWVA_* environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv(EnvEndpoint)); v != "" {
		c.Endpoint = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	endpoint := strings.TrimSpace(c.Endpoint)
	if endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint must use http or https, got: %q", endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint must include a host, got: %q", endpoint)
	}

	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("request_timeout_seconds must not be negative, got: %d", c.RequestTimeoutSeconds)
	}

	switch strings.ToLower(strings.TrimSpace(c.TranscriptFormat)) {
	case "json", "markdown", "md", "html":
	default:
		return fmt.Errorf("unsupported transcript_format: %q", c.TranscriptFormat)
	}

	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log_level: %q", c.LogLevel)
	}

	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "json", "text":
	default:
		return fmt.Errorf("unsupported log_format: %q", c.LogFormat)
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	return filepath.Join(baseDir(), configFileName)
}

// BaseDir returns the directory holding config, logs and transcripts.
func BaseDir() string {
	return baseDir()
}

func baseDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(homeDir) == "" {
		return configDirName
	}
	return filepath.Join(homeDir, configDirName)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
