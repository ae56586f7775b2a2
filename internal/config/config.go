// Package config provides application configuration loading and management.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultSessionSecret is the development-only cookie encryption key
// (base64-encoded 32 bytes). Production deployments must override it.
const DefaultSessionSecret = "ZGV2LW9ubHktc2Vzc2lvbi1rZXktY2hhbmdlLW1lISE="

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port          string `mapstructure:"PORT"`
	Env           string `mapstructure:"APP_ENV"`
	DataDir       string `mapstructure:"DATA_DIR"`
	ViewsDir      string `mapstructure:"VIEWS_DIR"`
	ScriptsDir    string `mapstructure:"SCRIPTS_DIR"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The config file is optional; defaults plus environment cover everything.
	_ = viper.ReadInConfig()

	viper.SetDefault("PORT", "8000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATA_DIR", "./db")
	viper.SetDefault("VIEWS_DIR", "./views")
	viper.SetDefault("SCRIPTS_DIR", "./scripts")
	viper.SetDefault("SESSION_SECRET", DefaultSessionSecret)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.DataDir == "" {
		return errors.New("DATA_DIR is required")
	}
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required")
	}

	key, err := base64.StdEncoding.DecodeString(c.SessionSecret)
	if err != nil {
		return fmt.Errorf("SESSION_SECRET must be base64-encoded: %w", err)
	}
	if len(key) != 32 {
		return errors.New("SESSION_SECRET must decode to exactly 32 bytes")
	}

	if c.IsProduction() && c.SessionSecret == DefaultSessionSecret {
		return errors.New("SESSION_SECRET must be changed from the default value in production")
	}

	return nil
}

// IsProduction reports whether the app runs with a production profile.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// CredentialsPath is the location of the serialized credential store.
func (c *Config) CredentialsPath() string {
	return filepath.Join(c.DataDir, "credentials.gob")
}

// ContentLogPath is the location of the delimited post log.
func (c *Config) ContentLogPath() string {
	return filepath.Join(c.DataDir, "content-log.log")
}

// ChatLogPath is the location of the HTML-fragment chat log.
func (c *Config) ChatLogPath() string {
	return filepath.Join(c.DataDir, "chat-log.log")
}

// ContentsDir is the directory holding uploaded media files.
func (c *Config) ContentsDir() string {
	return filepath.Join(c.DataDir, "contents")
}
