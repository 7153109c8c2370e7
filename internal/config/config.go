package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "MAINT"

// Config is the typed view of configs/config.yml plus MAINT_* overrides.
type Config struct {
	Port     string        `mapstructure:"port"`
	LogLevel string        `mapstructure:"log_level"`
	DB       DBConfig      `mapstructure:"db"`
	Rules    RulesConfig   `mapstructure:"rules"`
	Auth     AuthConfig    `mapstructure:"auth"`
	HTTP     HTTPConfig    `mapstructure:"http"`
	Metrics  MetricsConfig `mapstructure:"metrics"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type RulesConfig struct {
	Path string `mapstructure:"path"`
	// Strict rejects the whole rule file when any condition fails to compile.
	Strict bool `mapstructure:"strict"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

type HTTPConfig struct {
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

var ErrMissingSigningKey = errors.New("auth.signing_key must be set")

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("db.path", "database/maintenance.db")
	v.SetDefault("rules.path", "rules/rules.json")
	v.SetDefault("rules.strict", true)
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("metrics.enabled", true)
}

// Load reads the config file at path. An empty path searches for
// config.yml in ./configs and the working directory; a missing file is not
// an error in that case and defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath("configs")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	if strings.TrimSpace(c.Rules.Path) == "" {
		return errors.New("rules.path must be set")
	}
	if strings.TrimSpace(c.DB.Path) == "" {
		return errors.New("db.path must be set")
	}
	return nil
}

// ValidateServe checks the settings only the HTTP server needs.
func (c *Config) ValidateServe() error {
	if strings.TrimSpace(c.Auth.SigningKey) == "" {
		return ErrMissingSigningKey
	}
	return nil
}
