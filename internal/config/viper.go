// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		TemplatePath string   `mapstructure:"template_path" yaml:"template_path"`
		LayoutFile   string   `mapstructure:"layout_file" yaml:"layout_file"`
		Years        []string `mapstructure:"years" yaml:"years"`
	} `mapstructure:"data" yaml:"data"`

	Template struct {
		Placeholder string   `mapstructure:"placeholder" yaml:"placeholder"`
		HeaderCells []string `mapstructure:"header_cells" yaml:"header_cells"`
	} `mapstructure:"template" yaml:"template"`

	SharePoint struct {
		TenantID         string `mapstructure:"tenant_id" yaml:"tenant_id"`
		ClientID         string `mapstructure:"client_id" yaml:"client_id"`
		ClientSecret     string `mapstructure:"client_secret" yaml:"-"` // Never serialize the secret
		SiteHostname     string `mapstructure:"site_hostname" yaml:"site_hostname"`
		SitePath         string `mapstructure:"site_path" yaml:"site_path"`
		DevRootFolderID  string `mapstructure:"dev_root_folder_id" yaml:"dev_root_folder_id"`
		ProdRootFolderID string `mapstructure:"prod_root_folder_id" yaml:"prod_root_folder_id"`
	} `mapstructure:"sharepoint" yaml:"sharepoint"`
}

// RootFolderID returns the remote root folder for an environment.
// Only "dev" and "prod" are valid environments.
func (c *Config) RootFolderID(environment string) (string, error) {
	switch environment {
	case "dev":
		return c.SharePoint.DevRootFolderID, nil
	case "prod":
		return c.SharePoint.ProdRootFolderID, nil
	default:
		return "", fmt.Errorf("environment must be 'dev' or 'prod', got %q", environment)
	}
}

// OutputDir returns the directory the environment's stats workbooks are
// written to.
func OutputDir(environment string) string {
	return environment + "_stats"
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.ps1c-stats")
	v.AddConfigPath(".ps1c-stats")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("PS1C")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. The client secret always comes from the environment, unprefixed
	if err := v.BindEnv("sharepoint.client_secret", "PS1C_CLIENT_SECRET"); err != nil {
		fmt.Printf("Warning: failed to bind PS1C_CLIENT_SECRET environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Data defaults
	v.SetDefault("data.template_path", "templates/Stats Template.xlsx")
	v.SetDefault("data.layout_file", "payers.yaml")
	v.SetDefault("data.years", []string{"2024", "2025"})

	// Template defaults
	v.SetDefault("template.placeholder", "{YYYY}")
	v.SetDefault("template.header_cells", []string{"A1"})

	// SharePoint defaults
	v.SetDefault("sharepoint.site_hostname", "")
	v.SetDefault("sharepoint.site_path", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Template.Placeholder == "" {
		return fmt.Errorf("template.placeholder must not be empty")
	}

	if len(config.Template.HeaderCells) == 0 {
		return fmt.Errorf("template.header_cells must name at least one cell")
	}

	for _, year := range config.Data.Years {
		if len(year) != 4 {
			return fmt.Errorf("data.years entries must be four-digit years, got: %s", year)
		}
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
