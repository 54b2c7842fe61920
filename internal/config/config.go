// Package config loads snowq configuration from the environment and an
// optional config file in the XDG config dir. Environment variables have the
// highest priority; the file only fills what the environment leaves unset.
// Secrets may additionally be filled from the OS keychain for interactive use.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"snowq/cli/internal/keychain"
	"snowq/cli/internal/xdg"
)

// Config holds all configuration variables of the application that we read
// from file or environment variables.
type Config struct {
	// Viper uses the mapstructure package under the hood for unmarshaling values.
	Account   string `mapstructure:"SNOWFLAKE_ACCOUNT"`
	Host      string `mapstructure:"SNOWFLAKE_HOST"`
	User      string `mapstructure:"SNOWFLAKE_USER"`
	Password  string `mapstructure:"SNOWFLAKE_PASSWORD"`
	Warehouse string `mapstructure:"SNOWFLAKE_WAREHOUSE"`
	Database  string `mapstructure:"SNOWFLAKE_DATABASE"`
	Schema    string `mapstructure:"SNOWFLAKE_SCHEMA"`

	APIKey     string `mapstructure:"OPENAI_API_KEY"`
	Endpoint   string `mapstructure:"AZURE_ENDPOINT"`
	Deployment string `mapstructure:"AZURE_DEPLOYMENT_NAME"`
	APIVersion string `mapstructure:"AZURE_API_VERSION"`

	LogLevel string `mapstructure:"SNOWQ_LOG_LEVEL"`
	HTTPAddr string `mapstructure:"SNOWQ_HTTP_ADDR"`
}

// Load reads configuration from file or environment variables.
// A missing config file is not an error; environment variables alone are a
// complete configuration.
func Load(logger *zap.SugaredLogger) (Config, error) {
	v := viper.New()

	if dir, err := xdg.ConfigDir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("json")

	// AutomaticEnv() overrides values read from the config file with the
	// corresponding environment variables if they exist.
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
		logger.Debugw("no config file found, using environment only")
	} else {
		logger.Debugw("config file loaded", "path", v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// setDefaults registers every key with viper so that environment-only values
// survive Unmarshal. Secrets default to empty; there is no default account.
func setDefaults(v *viper.Viper) {
	v.SetDefault("SNOWFLAKE_ACCOUNT", "")
	v.SetDefault("SNOWFLAKE_HOST", "")
	v.SetDefault("SNOWFLAKE_USER", "")
	v.SetDefault("SNOWFLAKE_PASSWORD", "")
	v.SetDefault("SNOWFLAKE_WAREHOUSE", "")
	v.SetDefault("SNOWFLAKE_DATABASE", "")
	v.SetDefault("SNOWFLAKE_SCHEMA", "")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("AZURE_ENDPOINT", "")
	v.SetDefault("AZURE_DEPLOYMENT_NAME", "")
	v.SetDefault("AZURE_API_VERSION", "2024-02-01")
	v.SetDefault("SNOWQ_LOG_LEVEL", "info")
	v.SetDefault("SNOWQ_HTTP_ADDR", ":8080")
}

// FillSecretsFromKeychain loads missing secrets from the OS keychain.
// Best effort: on platforms without secure storage the config is returned
// unchanged.
func (c *Config) FillSecretsFromKeychain() {
	manager, err := keychain.GetManager()
	if err != nil {
		return
	}
	if c.Password == "" {
		if pw, err := manager.LoadWarehousePassword(); err == nil {
			c.Password = pw
		}
	}
	if c.APIKey == "" {
		if key, err := manager.LoadAPIKey(); err == nil {
			c.APIKey = key
		}
	}
}

// Save writes the non-secret settings to the config file in the XDG config
// dir. Secrets are never written to disk; they belong to the environment or
// the OS keychain.
func Save(c Config) error {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("json")
	v.SetConfigPermissions(0o600)
	v.Set("SNOWFLAKE_ACCOUNT", c.Account)
	v.Set("SNOWFLAKE_HOST", c.Host)
	v.Set("SNOWFLAKE_USER", c.User)
	v.Set("SNOWFLAKE_WAREHOUSE", c.Warehouse)
	v.Set("SNOWFLAKE_DATABASE", c.Database)
	v.Set("SNOWFLAKE_SCHEMA", c.Schema)
	v.Set("AZURE_ENDPOINT", c.Endpoint)
	v.Set("AZURE_DEPLOYMENT_NAME", c.Deployment)
	v.Set("AZURE_API_VERSION", c.APIVersion)
	v.Set("SNOWQ_LOG_LEVEL", c.LogLevel)
	v.Set("SNOWQ_HTTP_ADDR", c.HTTPAddr)

	return v.WriteConfigAs(filepath.Join(dir, "config.json"))
}
