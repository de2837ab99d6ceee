package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the client
type Config struct {
	API     APIConfig     `yaml:"api"`
	Push    PushConfig    `yaml:"push"`
	Geo     GeoConfig     `yaml:"geo"`
	Admin   AdminConfig   `yaml:"admin"`
	Session SessionConfig `yaml:"session"`
	UI      UIConfig      `yaml:"ui"`
	Log     LogConfig     `yaml:"log"`
}

// APIConfig holds CityFix REST API configuration
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// PushConfig holds push-channel configuration
type PushConfig struct {
	URL                 string `yaml:"url"`
	ReconnectMinSeconds int    `yaml:"reconnect_min_seconds"`
	ReconnectMaxSeconds int    `yaml:"reconnect_max_seconds"`
}

// GeoConfig holds geocoding configuration. Nominatim requires a
// descriptive User-Agent and tolerates at most one request per second.
type GeoConfig struct {
	BaseURL          string `yaml:"base_url"`
	UserAgent        string `yaml:"user_agent"`
	SearchDebounceMS int    `yaml:"search_debounce_ms"`
	SearchLimit      int    `yaml:"search_limit"`
}

// AdminConfig holds the admin passphrase. This is a UI privilege gate
// only, not a server credential; the server checks its own copy.
type AdminConfig struct {
	Passphrase string `yaml:"passphrase"`
}

// SessionConfig holds session persistence configuration
type SessionConfig struct {
	Path string `yaml:"path"`
}

// UIConfig holds presentation configuration
type UIConfig struct {
	StartFragment string `yaml:"start_fragment"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from a YAML file, applies environment
// overrides (a .env file is honored when present) and fills defaults.
func Load(path string) (*Config, error) {
	// Missing .env is fine; env vars may come from the environment itself.
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CITYFIX_API_BASE"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("CITYFIX_PUSH_URL"); v != "" {
		cfg.Push.URL = v
	}
	if v := os.Getenv("CITYFIX_ADMIN_PASSPHRASE"); v != "" {
		cfg.Admin.Passphrase = v
	}
	if v := os.Getenv("CITYFIX_SESSION_PATH"); v != "" {
		cfg.Session.Path = v
	}
	if v := os.Getenv("CITYFIX_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:5000"
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = 10
	}
	if cfg.Push.URL == "" {
		cfg.Push.URL = "ws://localhost:5000/events"
	}
	if cfg.Push.ReconnectMinSeconds <= 0 {
		cfg.Push.ReconnectMinSeconds = 1
	}
	if cfg.Push.ReconnectMaxSeconds <= 0 {
		cfg.Push.ReconnectMaxSeconds = 30
	}
	if cfg.Geo.BaseURL == "" {
		cfg.Geo.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Geo.UserAgent == "" {
		cfg.Geo.UserAgent = "cityfix-client/1.0"
	}
	if cfg.Geo.SearchDebounceMS <= 0 {
		cfg.Geo.SearchDebounceMS = 400
	}
	if cfg.Geo.SearchLimit <= 0 {
		cfg.Geo.SearchLimit = 5
	}
	if cfg.Admin.Passphrase == "" {
		cfg.Admin.Passphrase = "admin123"
	}
	if cfg.Session.Path == "" {
		cfg.Session.Path = "session.json"
	}
	if cfg.UI.StartFragment == "" {
		cfg.UI.StartFragment = "home"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// APITimeout returns the REST call timeout as a duration.
func (c *APIConfig) APITimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ReconnectMin returns the initial reconnect backoff.
func (c *PushConfig) ReconnectMin() time.Duration {
	return time.Duration(c.ReconnectMinSeconds) * time.Second
}

// ReconnectMax returns the reconnect backoff cap.
func (c *PushConfig) ReconnectMax() time.Duration {
	return time.Duration(c.ReconnectMaxSeconds) * time.Second
}

// SearchDebounce returns the quiet period for location search.
func (c *GeoConfig) SearchDebounce() time.Duration {
	return time.Duration(c.SearchDebounceMS) * time.Millisecond
}
