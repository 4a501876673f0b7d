// Package config loads the application configuration from file and
// environment. Environment variables override file values; missing files are
// tolerated so the binary can run on env vars alone.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/KOMKZ/go-dealdesk/auth"
	"github.com/KOMKZ/go-dealdesk/cache"
	"github.com/KOMKZ/go-dealdesk/logger"
	"github.com/KOMKZ/go-dealdesk/store"
)

// EnvPrefix environment variable prefix: DEALDESK_SERVER_PORT overrides
// server.port
const EnvPrefix = "DEALDESK"

// ServerConfig HTTP listener configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ApplyDefaults fills zero-value fields
func (c *ServerConfig) ApplyDefaults() {
	if c.Port <= 0 {
		c.Port = 8080
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 15 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
}

// Addr returns the listen address
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig cache store connection
type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// ApplyDefaults fills zero-value fields
func (c *RedisConfig) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = "127.0.0.1:6379"
	}
}

// AppConfig root configuration tree
type AppConfig struct {
	Server   ServerConfig  `mapstructure:"server"`
	Logger   logger.Config `mapstructure:"logger"`
	Database store.Config  `mapstructure:"database"`
	Redis    RedisConfig   `mapstructure:"redis"`
	Auth     auth.Config   `mapstructure:"auth"`
	Cache    cache.Policy  `mapstructure:"cache"`
}

// ApplyDefaults cascades defaults through every section
func (c *AppConfig) ApplyDefaults() {
	c.Server.ApplyDefaults()
	c.Redis.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Auth.ApplyDefaults()
	c.Cache.ApplyDefaults()
}

// Validate rejects configurations the server cannot run with
func (c *AppConfig) Validate() error {
	if c.Auth.Secret == "" {
		return fmt.Errorf("config: auth.secret is required")
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("config: database.dsn is required")
	}
	return nil
}

// Load reads the configuration file at path, overlays environment variables
// and applies defaults. An empty path skips the file and uses env only.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: access %s: %w", path, err)
		}
	}

	// AutomaticEnv only resolves keys viper already knows about, so make
	// every section key visible before unmarshalling
	bindStructKeys(v, "server", ServerConfig{})
	bindStructKeys(v, "logger", logger.Config{})
	bindStructKeys(v, "database", store.Config{})
	bindStructKeys(v, "redis", RedisConfig{})
	bindStructKeys(v, "auth", auth.Config{})
	bindStructKeys(v, "cache", cache.Policy{})

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}
