package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/ygelfand/studentctl/internal/commands"
	"github.com/ygelfand/studentctl/internal/config"
	"github.com/ygelfand/studentctl/internal/presenters"
	"github.com/ygelfand/studentctl/internal/roster"
	"github.com/ygelfand/studentctl/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:     "tui",
	Short:   "Launch the interactive TUI",
	GroupID: "tui",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func runTUI() error {
	cfg := config.Get()
	// Always log TUI sessions to a file for easier debugging
	cfg.LogFile = filepath.Join(cfg.CacheDir, "tui.log")
	cfg.SetupLogging()
	slog.Info("TUI Starting", "log_file", cfg.LogFile, "verbosity", cfg.Verbosity, "base_url", cfg.BaseURL)

	// The TUI always shows live data
	live := *cfg
	live.NoCache = true
	client, err := commands.NewClient(&live)
	if err != nil {
		return err
	}

	idx, err := openIndex(cfg)
	if err != nil {
		slog.Warn("TUI: local index unavailable", "error", err)
		idx = nil
	} else if err := idx.Load(); err != nil {
		slog.Debug("TUI: no local index loaded", "error", err)
	}

	data := roster.NewController(client, cfg.PageSize)
	p := tea.NewProgram(tui.NewController(cfg, data, presenters.StudentColumns, idx), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		slog.Error("TUI: Program run failed", "error", err)
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	slog.Info("TUI Finished normally")
	return nil
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
