package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigDefaults(t *testing.T) {
	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "{YYYY}", cfg.Template.Placeholder)
	assert.Equal(t, []string{"A1"}, cfg.Template.HeaderCells)
	assert.Equal(t, "payers.yaml", cfg.Data.LayoutFile)
	assert.NotEmpty(t, cfg.Data.Years)
}

func TestInitializeConfigFromEnvironment(t *testing.T) {
	t.Setenv("PS1C_LOG_LEVEL", "debug")
	t.Setenv("PS1C_CLIENT_SECRET", "s3cret")

	cfg, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "s3cret", cfg.SharePoint.ClientSecret)
}

func TestInitializeConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"Bad log level", "PS1C_LOG_LEVEL", "noisy"},
		{"Bad log format", "PS1C_LOG_FORMAT", "xml"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := InitializeConfig()
			assert.Error(t, err)
		})
	}
}

func TestRootFolderID(t *testing.T) {
	cfg := &Config{}
	cfg.SharePoint.DevRootFolderID = "dev-id"
	cfg.SharePoint.ProdRootFolderID = "prod-id"

	id, err := cfg.RootFolderID("dev")
	require.NoError(t, err)
	assert.Equal(t, "dev-id", id)

	id, err = cfg.RootFolderID("prod")
	require.NoError(t, err)
	assert.Equal(t, "prod-id", id)

	_, err = cfg.RootFolderID("staging")
	assert.Error(t, err)
}

func TestOutputDir(t *testing.T) {
	assert.Equal(t, "prod_stats", OutputDir("prod"))
	assert.Equal(t, "dev_stats", OutputDir("dev"))
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "warn"
	cfg.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(cfg)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}
