package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ygelfand/studentctl/internal/commands"
	"github.com/ygelfand/studentctl/internal/config"
	"github.com/ygelfand/studentctl/internal/ui"
)

var (
	cfgFile    string
	verbosity  int
	sortCol    string
	noCache    bool
	outputType string
	baseURL    string
	themeMode  string
)

var rootCmd = &cobra.Command{
	Use:           "studentctl",
	Short:         "Browse student records from the terminal",
	Version:       config.Version,
	Long:          `studentctl fetches paginated student records from a REST backend and renders them as a sortable, filterable table or an interactive TUI`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[ui.AnnotationSkipBackendCheck] == "true" {
			return nil
		}
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return commands.EnsureBackend(cmd.Context())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.Get().DefaultToTui {
			return runTUI()
		}
		return cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.RenderError(ui.ThemeFor(config.Get().Theme), err)
		os.Exit(1)
	}
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("studentctl version {{.Version}} (commit: %s, date: %s)\n", config.GitCommit, config.BuildDate))
	cobra.OnInitialize(initConfig)

	rootCmd.AddGroup(&cobra.Group{ID: "tui", Title: "Interactive"})
	rootCmd.AddGroup(&cobra.Group{ID: "students", Title: "Students"})
	rootCmd.AddGroup(&cobra.Group{ID: "index", Title: "Local Index"})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.studentctl.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputType, "output", "o", "table", "Output format (table, json, json-pretty, yaml, csv, txt)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Disable caching")
	viper.BindPFlag("no_cache", rootCmd.PersistentFlags().Lookup("no-cache"))

	rootCmd.PersistentFlags().StringVar(&sortCol, "sort", "", "column to sort by, optionally suffixed with :asc or :desc")
	viper.BindPFlag("sort", rootCmd.PersistentFlags().Lookup("sort"))

	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "backend base URL (default "+config.DefaultBaseURL+")")
	viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))

	rootCmd.PersistentFlags().StringVar(&themeMode, "theme", "", "color theme (auto, light, dark)")
	viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
}

func setDefaults(d *config.Config) {
	viper.SetDefault("base_url", d.BaseURL)
	viper.SetDefault("page_size", d.PageSize)
	viper.SetDefault("rows_per_page", d.RowsPerPage)
	viper.SetDefault("timeout", d.Timeout)
	viper.SetDefault("theme", string(d.Theme))
	viper.SetDefault("icon_type", string(d.IconType))
	viper.SetDefault("cache_dir", d.CacheDir)
	viper.SetDefault("cache_ttl", d.CacheTTL)
	viper.SetDefault("default_to_tui", d.DefaultToTui)
}

func initConfig() {
	cfg := config.Get()
	cfg.Verbosity = viper.GetInt("verbose")
	cfg.SetupLogging()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			ui.RenderError(ui.ThemeFor(cfg.Theme), fmt.Errorf("failed to get home directory: %w", err))
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".studentctl")
	}

	viper.SetEnvPrefix("STUDENTCTL")
	viper.AutomaticEnv()
	setDefaults(config.Default())

	if err := viper.ReadInConfig(); err == nil {
		cfg.ConfigPath = viper.ConfigFileUsed()
	}

	if err := viper.Unmarshal(cfg); err != nil {
		ui.RenderError(ui.ThemeFor(cfg.Theme), fmt.Errorf("failed to parse config: %w", err))
		os.Exit(1)
	}

	// Ensure flags override config
	if outputType != "" && outputType != "table" {
		cfg.OutputFormat = outputType
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "table"
	}
	if !ui.ValidFormat(cfg.OutputFormat) {
		ui.RenderError(ui.ThemeFor(cfg.Theme), fmt.Errorf("invalid output format: %s", cfg.OutputFormat))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		ui.RenderError(ui.ThemeFor(config.ThemeModeAuto), fmt.Errorf("invalid configuration: %w", err))
		os.Exit(1)
	}

	if verbosity > 0 {
		cfg.Verbosity = verbosity
		cfg.SetupLogging()
	}

	viper.Set("output", cfg.OutputFormat)
}
