package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/ygelfand/studentctl/internal/config"
	"github.com/ygelfand/studentctl/internal/ui"
)

var openCmd = &cobra.Command{
	Use:     "open",
	Short:   "Open the backend students endpoint in a browser",
	GroupID: "students",
	Annotations: map[string]string{
		ui.AnnotationSkipBackendCheck: "true",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		target := fmt.Sprintf("%s/students?page=1&size=%d", strings.TrimRight(cfg.BaseURL, "/"), cfg.PageSize)
		slog.Debug("Opening browser", "url", target)
		if err := browser.OpenURL(target); err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}
		ui.RenderSuccess(ui.ThemeFor(cfg.Theme), "Opened "+target)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
