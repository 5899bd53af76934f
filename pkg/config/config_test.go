package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Clear any ambient overrides; t.Setenv restores the originals
	for _, key := range []string{
		"ASSESSMENTS_INPUT_PATH", "CLEANED_OUTPUT_PATH",
		"SUMMARY_REPORT_PATH", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "assessments.csv", cfg.InputPath)
	assert.Equal(t, "cleaned_assessments.csv", cfg.OutputPath)
	assert.Equal(t, "README.md", cfg.ReportPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ASSESSMENTS_INPUT_PATH", "/data/in.csv")
	t.Setenv("CLEANED_OUTPUT_PATH", "/data/out.csv")
	t.Setenv("SUMMARY_REPORT_PATH", "/data/summary.md")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/data/in.csv", cfg.InputPath)
	assert.Equal(t, "/data/out.csv", cfg.OutputPath)
	assert.Equal(t, "/data/summary.md", cfg.ReportPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestValidate(t *testing.T) {
	valid := Config{
		InputPath:  "in.csv",
		OutputPath: "out.csv",
		ReportPath: "README.md",
		LogLevel:   "info",
		LogFormat:  "json",
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing input", func(c *Config) { c.InputPath = "" }, true},
		{"missing output", func(c *Config) { c.OutputPath = "" }, true},
		{"missing report", func(c *Config) { c.ReportPath = "" }, true},
		{"output equals input", func(c *Config) { c.OutputPath = c.InputPath }, true},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"console format", func(c *Config) { c.LogFormat = "console" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfigInvalidEnv(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")

	_, err := LoadConfig()
	assert.Error(t, err)
}
