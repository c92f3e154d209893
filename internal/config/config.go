package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full process configuration, loaded from an optional
// YAML file with RENDERD_ environment variable overrides.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Session SessionConfig `mapstructure:"session"`
	OAuth   OAuthConfig   `mapstructure:"oauth"`
	Assets  AssetsConfig  `mapstructure:"assets"`
	Sentry  SentryConfig  `mapstructure:"sentry"`
	Cluster ClusterConfig `mapstructure:"cluster"`

	// Dev enables the GraphiQL explorer, live reload, and pretty logs.
	Dev bool `mapstructure:"dev"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string `mapstructure:"tls_cert"`
	TLSKey  string `mapstructure:"tls_key"`

	// APIURL is the GraphQL endpoint advertised to clients.
	APIURL string `mapstructure:"api_url"`
}

type SessionConfig struct {
	// JWTSecret signs session tokens. Required, at least 32 bytes.
	JWTSecret string `mapstructure:"jwt_secret"`

	// CookieSecret signs non-session cookies such as the login state.
	CookieSecret string `mapstructure:"cookie_secret"`

	// CookieDomain scopes the cookies; empty means host-only.
	CookieDomain string `mapstructure:"cookie_domain"`
}

type OAuthConfig struct {
	Facebook OAuthClient `mapstructure:"facebook"`
	Google   OAuthClient `mapstructure:"google"`
}

type OAuthClient struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

// Configured reports whether this client can be enabled.
func (c OAuthClient) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type AssetsConfig struct {
	// Manifest is the path to the bundle manifest written by the
	// client build.
	Manifest string `mapstructure:"manifest"`

	// Dir is the directory of built client assets served at /assets/.
	Dir string `mapstructure:"dir"`
}

type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

type ClusterConfig struct {
	// Enabled runs one worker process per CPU behind a supervisor.
	Enabled bool `mapstructure:"enabled"`

	// Workers overrides the worker count; zero means one per CPU.
	Workers int `mapstructure:"workers"`
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TLSEnabled reports whether the server should terminate TLS itself.
func (c ServerConfig) TLSEnabled() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// Load reads configuration from renderd.yml (optional) and the
// environment. Environment keys use the RENDERD_ prefix with
// underscores, e.g. RENDERD_SERVER_PORT or RENDERD_SESSION_JWT_SECRET.
func Load() (*Config, error) {
	v := viper.New()

	// Every key needs a default so environment-only values survive
	// Unmarshal.
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.tls_cert", "")
	v.SetDefault("server.tls_key", "")
	v.SetDefault("server.api_url", "/graphql")
	v.SetDefault("session.jwt_secret", "")
	v.SetDefault("session.cookie_secret", "")
	v.SetDefault("session.cookie_domain", "")
	v.SetDefault("oauth.facebook.client_id", "")
	v.SetDefault("oauth.facebook.client_secret", "")
	v.SetDefault("oauth.facebook.redirect_url", "")
	v.SetDefault("oauth.google.client_id", "")
	v.SetDefault("oauth.google.client_secret", "")
	v.SetDefault("oauth.google.redirect_url", "")
	v.SetDefault("assets.manifest", "./build/assets.json")
	v.SetDefault("assets.dir", "./build/public/assets")
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "")
	v.SetDefault("cluster.enabled", false)
	v.SetDefault("cluster.workers", 0)
	v.SetDefault("dev", false)
	v.SetDefault("log_level", "info")

	v.SetConfigName("renderd")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RENDERD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants the rest of the process relies on.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid server port %d", c.Server.Port)
	}
	if len(c.Session.JWTSecret) < 32 {
		return errors.New("config: session.jwt_secret must be at least 32 bytes")
	}
	if (c.Server.TLSCert == "") != (c.Server.TLSKey == "") {
		return errors.New("config: tls_cert and tls_key must be set together")
	}
	if (c.OAuth.Facebook.Configured() || c.OAuth.Google.Configured()) && len(c.Session.CookieSecret) < 32 {
		return errors.New("config: session.cookie_secret must be at least 32 bytes when a login provider is configured")
	}
	if c.Assets.Manifest == "" {
		return errors.New("config: assets.manifest is required")
	}
	if c.Cluster.Workers < 0 {
		return fmt.Errorf("config: invalid cluster worker count %d", c.Cluster.Workers)
	}
	return nil
}
