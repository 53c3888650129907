package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, ThemeModeAuto, cfg.Theme)
	assert.True(t, cfg.DefaultToTui)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "empty base url", mutate: func(c *Config) { c.BaseURL = "" }, wantErr: "base_url"},
		{name: "zero page size", mutate: func(c *Config) { c.PageSize = 0 }, wantErr: "page_size"},
		{name: "negative rows", mutate: func(c *Config) { c.RowsPerPage = -2 }, wantErr: "rows_per_page"},
		{name: "bad theme", mutate: func(c *Config) { c.Theme = "sepia" }, wantErr: "invalid theme"},
		{name: "bad icons", mutate: func(c *Config) { c.IconType = "nerdfonts" }, wantErr: "icon_type"},
		{name: "empty theme is auto", mutate: func(c *Config) { c.Theme = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSetupLogging_Levels(t *testing.T) {
	cfg := Default()

	cfg.Verbosity = 0
	cfg.SetupLogging()
	assert.False(t, cfg.Enabled(slog.LevelDebug))

	cfg.Verbosity = 1
	cfg.SetupLogging()
	assert.True(t, cfg.Enabled(slog.LevelDebug))
	assert.False(t, cfg.Enabled(LevelTrace))

	cfg.Verbosity = 2
	cfg.SetupLogging()
	assert.True(t, cfg.Enabled(LevelTrace))
}
