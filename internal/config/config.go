package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// FullVersion returns a concatenated version string
func FullVersion() string {
	return fmt.Sprintf("%s-%s-%s", Version, GitCommit, BuildDate)
}

// UserAgent is sent with every backend request
func UserAgent() string {
	return "studentctl/" + Version
}

type IconType string

const (
	IconTypeASCII IconType = "ascii"
	IconTypeEmoji IconType = "emoji"
)

type ThemeMode string

const (
	ThemeModeAuto  ThemeMode = "auto"
	ThemeModeLight ThemeMode = "light"
	ThemeModeDark  ThemeMode = "dark"
)

// ParseThemeMode validates a theme mode string, empty meaning auto
func ParseThemeMode(s string) (ThemeMode, error) {
	switch m := ThemeMode(s); m {
	case "":
		return ThemeModeAuto, nil
	case ThemeModeAuto, ThemeModeLight, ThemeModeDark:
		return m, nil
	}
	return "", fmt.Errorf("invalid theme %q (want auto, light or dark)", s)
}

const (
	DefaultBaseURL     = "http://localhost:8000"
	DefaultPageSize    = 10
	DefaultRowsPerPage = 10
	DefaultTimeout     = 30 * time.Second
	DefaultCacheTTL    = 30 * time.Second
)

// Config holds the global configuration for studentctl
type Config struct {
	BaseURL      string        `mapstructure:"base_url"`
	PageSize     int           `mapstructure:"page_size"`
	RowsPerPage  int           `mapstructure:"rows_per_page"`
	Timeout      time.Duration `mapstructure:"timeout"`
	OutputFormat string        `mapstructure:"output"`
	Verbosity    int           `mapstructure:"verbose"`
	Theme        ThemeMode     `mapstructure:"theme"`
	IconType     IconType      `mapstructure:"icon_type"`
	CacheDir     string        `mapstructure:"cache_dir"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	NoCache      bool          `mapstructure:"no_cache"`
	DefaultToTui bool          `mapstructure:"default_to_tui"`

	// Runtime only
	ConfigPath string       `mapstructure:"-"`
	LogFile    string       `mapstructure:"-"`
	Logger     *slog.Logger `mapstructure:"-"`
	LogLevel   *slog.LevelVar
}

var (
	instance *Config
	once     sync.Once
)

const (
	LevelTrace slog.Level = -8
)

// Default returns a configuration populated with built-in defaults
func Default() *Config {
	home, _ := os.UserHomeDir()
	lvl := &slog.LevelVar{}
	lvl.Set(slog.LevelInfo)
	return &Config{
		Logger:       slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})),
		LogLevel:     lvl,
		BaseURL:      DefaultBaseURL,
		PageSize:     DefaultPageSize,
		RowsPerPage:  DefaultRowsPerPage,
		Timeout:      DefaultTimeout,
		OutputFormat: "table",
		Theme:        ThemeModeAuto,
		IconType:     IconTypeASCII,
		CacheDir:     filepath.Join(home, ".studentctl", "cache"),
		CacheTTL:     DefaultCacheTTL,
		DefaultToTui: true,
	}
}

// Get returns the global configuration singleton
func Get() *Config {
	once.Do(func() {
		instance = Default()
	})
	return instance
}

// Validate checks values that would otherwise fail at request time
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.RowsPerPage <= 0 {
		return fmt.Errorf("rows_per_page must be positive, got %d", c.RowsPerPage)
	}
	if _, err := ParseThemeMode(string(c.Theme)); err != nil {
		return err
	}
	switch c.IconType {
	case IconTypeASCII, IconTypeEmoji:
	default:
		return fmt.Errorf("invalid icon_type %q (want ascii or emoji)", c.IconType)
	}
	return nil
}

// SetupLogging initializes the global logger based on verbosity
func (c *Config) SetupLogging() {
	var level slog.Level
	switch {
	case c.Verbosity >= 2:
		level = LevelTrace
	case c.Verbosity >= 1:
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}

	c.LogLevel.Set(level)

	opts := &slog.HandlerOptions{
		Level: c.LogLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				level := a.Value.Any().(slog.Level)
				if level == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}

	var writer io.Writer = os.Stderr
	if c.LogFile != "" {
		_ = os.MkdirAll(filepath.Dir(c.LogFile), 0755)
		f, err := os.OpenFile(c.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			writer = f
		}
	}

	handler := slog.NewTextHandler(writer, opts)
	c.Logger = slog.New(handler)
	slog.SetDefault(c.Logger)
}

// Enabled returns true if the given level is enabled
func (c *Config) Enabled(level slog.Level) bool {
	return c.LogLevel.Level() <= level
}

// Save persists the current configuration to disk
func (c *Config) Save() error {
	viper.Set("base_url", c.BaseURL)
	viper.Set("page_size", c.PageSize)
	viper.Set("rows_per_page", c.RowsPerPage)
	viper.Set("timeout", c.Timeout.String())
	viper.Set("output", c.OutputFormat)
	viper.Set("theme", c.Theme)
	viper.Set("icon_type", c.IconType)
	viper.Set("cache_dir", c.CacheDir)
	viper.Set("cache_ttl", c.CacheTTL.String())
	viper.Set("default_to_tui", c.DefaultToTui)

	if c.ConfigPath != "" {
		return viper.WriteConfig()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	c.ConfigPath = filepath.Join(home, ".studentctl.yaml")
	return viper.WriteConfigAs(c.ConfigPath)
}
