package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ygelfand/studentctl/internal/api"
	"github.com/ygelfand/studentctl/internal/cache"
	"github.com/ygelfand/studentctl/internal/commands"
	"github.com/ygelfand/studentctl/internal/config"
	"github.com/ygelfand/studentctl/internal/presenters"
	"github.com/ygelfand/studentctl/internal/search"
	"github.com/ygelfand/studentctl/internal/ui"
)

const findLimit = 20

func openIndex(cfg *config.Config) (*search.RosterIndex, error) {
	cm, err := cache.New(cfg.CacheDir, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open index store: %w", err)
	}
	return search.NewIndex(cm, strings.TrimRight(cfg.BaseURL, "/")), nil
}

var indexCmd = &cobra.Command{
	Use:     "index",
	Short:   "Manage and use the local roster index",
	GroupID: "index",
}

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show local index status",
	Annotations: map[string]string{
		ui.AnnotationSkipBackendCheck: "true",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		idx, err := openIndex(cfg)
		if err != nil {
			return err
		}
		_ = idx.Load()

		lastIndexed := "Never"
		if !idx.LastIndexed.IsZero() {
			lastIndexed = idx.LastIndexed.Format("2006-01-02 15:04:05")
		}

		opts := commands.NewOptions(cfg)
		return ui.OutputData{
			Title:   "ROSTER INDEX STATUS",
			Headers: []string{"PROPERTY", "VALUE"},
			Rows: [][]string{
				{"Backend", cfg.BaseURL},
				{"Last Indexed", lastIndexed},
				{"Total Entries", fmt.Sprintf("%d", idx.Len())},
			},
			Raw: map[string]any{
				"backend":       cfg.BaseURL,
				"last_indexed":  lastIndexed,
				"total_entries": idx.Len(),
			},
		}.Print(os.Stdout, opts.OutputFormat, opts.Theme)
	},
}

var indexRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Fetch every student page and rebuild the local index",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		theme := ui.ThemeFor(cfg.Theme)
		idx, err := openIndex(cfg)
		if err != nil {
			return err
		}
		// Always fetch fresh pages; the page cache would replay stale data
		client, err := api.NewClient(cfg)
		if err != nil {
			return err
		}

		fmt.Println(ui.TitleStyle(theme).Render("Starting Reindex..."))

		progress := make(chan search.IndexProgress, 100)
		errc := make(chan error, 1)
		go func() {
			errc <- idx.Reindex(cmd.Context(), client, progress)
			close(progress)
		}()

		for p := range progress {
			fmt.Printf("\r\033[K[%d/%d] %s", p.Current, p.Total, p.Message)
		}
		fmt.Println()

		if err := <-errc; err != nil {
			return fmt.Errorf("reindex failed: %w", err)
		}
		ui.RenderSuccess(theme, fmt.Sprintf("Indexing complete! %d students", idx.Len()))
		return nil
	},
}

var indexFindCmd = &cobra.Command{
	Use:   "find [query]",
	Short: "Fuzzy find students by name or roll number in the local index",
	Args:  cobra.MinimumNArgs(1),
	Annotations: map[string]string{
		ui.AnnotationSkipBackendCheck: "true",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		cfg := config.Get()
		idx, err := openIndex(cfg)
		if err != nil {
			return err
		}
		if err := idx.Load(); err != nil || idx.Len() == 0 {
			return fmt.Errorf("index is empty. Please run 'studentctl index rebuild' first")
		}

		matches := idx.Find(query, findLimit)
		if len(matches) == 0 {
			fmt.Println("No matches found.")
			return nil
		}

		opts := commands.NewOptions(cfg)
		// Keep match ranking unless the user asked for a sort
		return commands.Print(&presenters.StudentsPresenter{
			Name:    fmt.Sprintf("Results for: %s", query),
			Records: matches,
			Columns: presenters.StudentColumns,
		}, opts)
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.AddCommand(indexStatusCmd)
	indexCmd.AddCommand(indexRebuildCmd)
	indexCmd.AddCommand(indexFindCmd)
}
