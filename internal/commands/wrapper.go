package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ygelfand/studentctl/internal/api"
	"github.com/ygelfand/studentctl/internal/cache"
	"github.com/ygelfand/studentctl/internal/config"
	"github.com/ygelfand/studentctl/internal/presenters"
	"github.com/ygelfand/studentctl/internal/ui"
)

// RunnerFunc defines the signature for a command handler that receives a backend client
type RunnerFunc func(ctx context.Context, client *api.Client, cmd *cobra.Command, args []string, opts *StudentctlOptions) error

// NewOptions collects the output options from viper and the active configuration
func NewOptions(cfg *config.Config) *StudentctlOptions {
	return &StudentctlOptions{
		OutputFormat: viper.GetString("output"),
		Verbosity:    viper.GetInt("verbose"),
		Sort:         viper.GetString("sort"),
		IconType:     cfg.IconType,
		Theme:        ui.ThemeFor(cfg.Theme),
	}
}

// NewClient builds the backend client with the page cache when enabled
func NewClient(cfg *config.Config) (*api.Client, error) {
	var opts []api.Option
	if !cfg.NoCache && cfg.CacheTTL > 0 {
		cm, err := cache.New(cfg.CacheDir, cfg.NoCache)
		if err != nil {
			slog.Warn("Cache unavailable, continuing without it", "dir", cfg.CacheDir, "error", err)
		} else {
			opts = append(opts, api.WithCache(cm, cfg.CacheTTL))
		}
	}
	return api.NewClient(cfg, opts...)
}

// RunWithClient wraps a cobra command RunE function to inject a configured backend client
func RunWithClient(runner RunnerFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		client, err := NewClient(cfg)
		if err != nil {
			return err
		}
		return runner(cmd.Context(), client, cmd, args, NewOptions(cfg))
	}
}

// EnsureBackend checks that the configured backend answers
func EnsureBackend(ctx context.Context) error {
	cfg := config.Get()
	client, err := api.NewClient(cfg)
	if err != nil {
		return err
	}
	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("backend %s is not reachable: %w", client.BaseURL(), err)
	}
	return nil
}

// Print formats and prints data using the provided Presenter
func Print(p presenters.Presenter, opts *StudentctlOptions) error {
	sortCol := opts.Sort
	if sortCol == "" {
		sortCol = p.DefaultSort()
	}

	if sortCol != "" {
		if !p.SortBy(sortCol) {
			return fmt.Errorf("cannot sort by %q (sortable: %v)", sortCol, p.SortableColumns())
		}
	}

	data := ui.OutputData{
		Title:   p.Title(),
		Headers: p.Headers(),
		Rows:    p.Rows(),
		Footer:  p.Footer(),
		Raw:     p.Raw(),
	}

	return data.Print(os.Stdout, opts.OutputFormat, opts.Theme)
}
