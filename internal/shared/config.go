package shared

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

const defaultSessionTTL = 30 * 24 * time.Hour

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Auth     AuthConfig     `toml:"auth"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
}

// AuthConfig contains session signing settings and OAuth provider credentials.
type AuthConfig struct {
	SessionSecret string         `toml:"session_secret"`
	SessionTTL    string         `toml:"session_ttl"`
	GitHub        ProviderConfig `toml:"github"`
	Google        ProviderConfig `toml:"google"`
}

// ProviderConfig contains OAuth2 client credentials for an identity provider.
type ProviderConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURL  string `toml:"redirect_url"`
}

// Enabled reports whether both client credentials are present.
func (p ProviderConfig) Enabled() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	BaseURL        string   `toml:"base_url"`
	AllowedOrigins []string `toml:"allowed_origins"`
	SecureCookies  bool     `toml:"secure_cookies"`
	TrustProxy     bool     `toml:"trust_proxy"`      // honor X-Forwarded-For / X-Real-IP
	LoginRateLimit float64  `toml:"login_rate_limit"` // sign-in attempts per second per client
	LoginBurst     int      `toml:"login_burst"`
}

// Addr returns the host:port the server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SessionDuration parses [AuthConfig.SessionTTL], defaulting to 30 days when unset or malformed.
func (a AuthConfig) SessionDuration() time.Duration {
	if a.SessionTTL == "" {
		return defaultSessionTTL
	}
	d, err := time.ParseDuration(a.SessionTTL)
	if err != nil || d <= 0 {
		return defaultSessionTTL
	}
	return d
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// LoadOrDefault loads the config at path, falling back to [DefaultConfig] when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig encodes the config as TOML and writes it to path.
func SaveConfig(path string, config *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// LoadEnv loads variables from the given .env files into the process environment.
// Missing files are skipped; variables already set are not overwritten.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides config values with environment variables when they are set.
//
//	STAYX_SESSION_SECRET, STAYX_DATABASE_PATH, STAYX_PORT,
//	GITHUB_ID, GITHUB_SECRET, GOOGLE_ID, GOOGLE_SECRET
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv("STAYX_SESSION_SECRET"); ok && v != "" {
		c.Auth.SessionSecret = v
	}
	if v, ok := os.LookupEnv("STAYX_DATABASE_PATH"); ok && v != "" {
		c.Database.Path = v
	}
	if v, ok := os.LookupEnv("STAYX_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: STAYX_PORT=%q", ErrInvalidConfig, v)
		}
		c.Server.Port = port
	}
	if v, ok := os.LookupEnv("GITHUB_ID"); ok {
		c.Auth.GitHub.ClientID = v
	}
	if v, ok := os.LookupEnv("GITHUB_SECRET"); ok {
		c.Auth.GitHub.ClientSecret = v
	}
	if v, ok := os.LookupEnv("GOOGLE_ID"); ok {
		c.Auth.Google.ClientID = v
	}
	if v, ok := os.LookupEnv("GOOGLE_SECRET"); ok {
		c.Auth.Google.ClientSecret = v
	}
	return nil
}

// Validate checks the settings the web server cannot start without.
func (c *Config) Validate() error {
	if c.Auth.SessionSecret == "" {
		return fmt.Errorf("%w: auth.session_secret is required", ErrMissingConfig)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is required", ErrMissingConfig)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	return nil
}
