package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a config file when none is given.
const DefaultPath = "pizza.yaml"

// Config holds all client configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig locates the ordering service.
type APIConfig struct {
	BaseURL     string `yaml:"base_url"`
	CatalogPath string `yaml:"catalog_path"`
	OrderPath   string `yaml:"order_path"`
	Timeout     string `yaml:"timeout"` // empty or "0" disables the timeout
	Token       string `yaml:"token,omitempty"`
}

// UIConfig configures the terminal rendering.
type UIConfig struct {
	Theme string `yaml:"theme"` // classic, neon, mono
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     "http://localhost:3333",
			CatalogPath: "/api/pizza",
			OrderPath:   "/api/order",
			Timeout:     "",
		},
		UI: UIConfig{
			Theme: "classic",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0600: the file may carry an API token.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("PIZZA_API_URL")); v != "" {
		c.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("PIZZA_TOKEN")); v != "" {
		c.API.Token = v
	}
	if v := strings.TrimSpace(os.Getenv("PIZZA_LOG_LEVEL")); v != "" {
		c.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("PIZZA_LOG_FILE")); v != "" {
		c.Logging.File = v
	}
}

// GetTimeout returns the request timeout. Zero means no timeout.
func (c *Config) GetTimeout() time.Duration {
	if c.API.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// ValidThemes lists the supported UI themes.
var ValidThemes = []string{"classic", "neon", "mono"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api base_url: %q", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api base_url scheme: %s", u.Scheme)
	}
	if !strings.HasPrefix(c.API.CatalogPath, "/") || !strings.HasPrefix(c.API.OrderPath, "/") {
		return fmt.Errorf("api paths must start with /: catalog=%q order=%q", c.API.CatalogPath, c.API.OrderPath)
	}
	if c.API.Timeout != "" {
		if _, err := time.ParseDuration(c.API.Timeout); err != nil {
			return fmt.Errorf("invalid api timeout: %w", err)
		}
	}

	validTheme := false
	for _, t := range ValidThemes {
		if strings.EqualFold(c.UI.Theme, t) {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("invalid theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}
	return nil
}
