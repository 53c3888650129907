package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ygelfand/studentctl/internal/api"
	"github.com/ygelfand/studentctl/internal/commands"
	"github.com/ygelfand/studentctl/internal/config"
	"github.com/ygelfand/studentctl/internal/grid"
	"github.com/ygelfand/studentctl/internal/presenters"
	"github.com/ygelfand/studentctl/internal/roster"
	"github.com/ygelfand/studentctl/internal/ui"
)

// gridFlags are the client-side pipeline options shared by the students commands
type gridFlags struct {
	query    string
	filters  []string
	rows     int
	viewPage int
}

func (f *gridFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "free-text search across every field")
	cmd.Flags().StringArrayVarP(&f.filters, "filter", "f", nil, "field filter as field=substring (repeatable)")
	cmd.Flags().IntVar(&f.rows, "rows", 0, "rows per display page (0 shows all)")
	cmd.Flags().IntVar(&f.viewPage, "view-page", 1, "display page to show when --rows is set")
}

func (f *gridFlags) presenter(name string, snap roster.Snapshot, withPage bool) (*presenters.StudentsPresenter, error) {
	criteria, err := parseCriteria(f.filters, presenters.StudentColumns)
	if err != nil {
		return nil, err
	}
	if f.viewPage < 1 {
		return nil, fmt.Errorf("--view-page must be at least 1, got %d", f.viewPage)
	}
	p := &presenters.StudentsPresenter{
		Name:        name,
		Records:     snap.Records,
		Columns:     presenters.StudentColumns,
		Query:       f.query,
		Criteria:    criteria,
		RowsPerPage: f.rows,
		ViewPage:    f.viewPage - 1,
	}
	if withPage {
		page := snap.Page
		p.Page = &page
	}
	return p, nil
}

// parseCriteria turns field=value pairs into filter criteria keyed by column source
func parseCriteria(pairs []string, columns []grid.Column) (grid.FilterCriteria, error) {
	criteria := grid.FilterCriteria{}
	for _, pair := range pairs {
		field, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid filter %q (want field=value)", pair)
		}
		col, found := presenters.ColumnBySource(columns, field)
		if !found {
			return nil, fmt.Errorf("unknown filter field %q", field)
		}
		criteria[col.Source] = value
	}
	return criteria, nil
}

var studentsCmd = &cobra.Command{
	Use:     "students",
	Short:   "List, search and filter students",
	GroupID: "students",
}

var (
	listFlags gridFlags
	listPage  int
	listSize  int
	listAll   bool
)

var studentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a page of students",
	RunE: commands.RunWithClient(func(ctx context.Context, client *api.Client, cmd *cobra.Command, args []string, opts *commands.StudentctlOptions) error {
		size := listSize
		if size <= 0 {
			size = config.Get().PageSize
		}
		if listPage < 1 {
			return fmt.Errorf("--page must be at least 1, got %d", listPage)
		}

		ctrl := roster.NewController(client, size)
		snap, err := loadPages(ctx, client, ctrl, listPage, size, listAll)
		if err != nil {
			return err
		}

		p, err := listFlags.presenter("Students", snap, !listAll)
		if err != nil {
			return err
		}
		return commands.Print(p, opts)
	}),
}

// loadPages fetches one server page, or walks every next cursor from it when all is set
func loadPages(ctx context.Context, client *api.Client, ctrl *roster.Controller, page, size int, all bool) (roster.Snapshot, error) {
	if page == 1 {
		if err := ctrl.Load(ctx); err != nil {
			return roster.Snapshot{}, err
		}
	} else {
		res, err := client.ListStudents(ctx, api.PageParams{Page: page, Size: size})
		if err != nil {
			return roster.Snapshot{}, fmt.Errorf("load page %d: %w", page, err)
		}
		if err := ctrl.Apply(roster.Result{Op: "load", Kind: roster.KindPage, Response: res}); err != nil {
			return roster.Snapshot{}, err
		}
	}

	snap := ctrl.Snapshot()
	if !all {
		return snap, nil
	}

	records := append([]grid.Record{}, snap.Records...)
	for snap.Page.HasNext() {
		if err := ctrl.Next(ctx); err != nil {
			return roster.Snapshot{}, err
		}
		snap = ctrl.Snapshot()
		records = append(records, snap.Records...)
		slog.Debug("Students: walked page", "page", snap.Page.Page, "total", len(records))
	}
	return roster.Snapshot{Records: records, Page: snap.Page}, nil
}

var (
	searchFlags  gridFlags
	searchRollNo bool
)

var studentsSearchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search students by name, or by roll number with --roll-no",
	Args:  cobra.MaximumNArgs(1),
	RunE: commands.RunWithClient(func(ctx context.Context, client *api.Client, cmd *cobra.Command, args []string, opts *commands.StudentctlOptions) error {
		term := ""
		if len(args) > 0 {
			term = args[0]
		}

		ctrl := roster.NewController(client, config.Get().PageSize)
		title := fmt.Sprintf("Students matching name %q", term)
		var err error
		if searchRollNo {
			title = fmt.Sprintf("Students matching roll no %q", term)
			err = ctrl.SearchByRollNo(ctx, term)
		} else {
			err = ctrl.SearchByName(ctx, term)
		}
		if err != nil {
			return err
		}

		p, err := searchFlags.presenter(title, ctrl.Snapshot(), false)
		if err != nil {
			return err
		}
		return commands.Print(p, opts)
	}),
}

var (
	filterFlags gridFlags
	filterMarks string
	filterCmp   string
)

var studentsFilterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter students by total marks",
	Example: `  studentctl students filter --marks 80 --cp gt
  studentctl students filter --marks 50 --cp "<"`,
	RunE: commands.RunWithClient(func(ctx context.Context, client *api.Client, cmd *cobra.Command, args []string, opts *commands.StudentctlOptions) error {
		if _, err := roster.ParseMarks(filterMarks); err != nil {
			return err
		}

		cmp, err := resolveComparison(filterCmp, opts)
		if err != nil {
			return err
		}

		ctrl := roster.NewController(client, config.Get().PageSize)
		if err := ctrl.SearchByMarks(ctx, filterMarks, cmp); err != nil {
			return err
		}

		title := fmt.Sprintf("Students with total marks %s %s", cmp.Symbol(), strings.TrimSpace(filterMarks))
		p, err := filterFlags.presenter(title, ctrl.Snapshot(), false)
		if err != nil {
			return err
		}
		return commands.Print(p, opts)
	}),
}

// resolveComparison parses --cp, prompting for it on an interactive terminal
func resolveComparison(value string, opts *commands.StudentctlOptions) (api.Comparison, error) {
	if value != "" {
		cmp, err := api.ParseComparison(value)
		if err != nil {
			return "", fmt.Errorf("%w: %v", roster.ErrInvalidComparison, err)
		}
		return cmp, nil
	}
	if !ui.StdinIsTerminal() {
		return "", fmt.Errorf("%w: --cp is required", roster.ErrInvalidComparison)
	}

	options := make([]ui.Option, 0, len(api.Comparisons))
	for _, c := range api.Comparisons {
		options = append(options, ui.Option{Title: c.Label(), Desc: c.Symbol(), Value: string(c)})
	}
	choice, err := ui.SelectOption("Compare total marks", options, opts.Theme)
	if err != nil {
		return "", err
	}
	return api.Comparison(choice), nil
}

func init() {
	rootCmd.AddCommand(studentsCmd)
	studentsCmd.AddCommand(studentsListCmd)
	studentsCmd.AddCommand(studentsSearchCmd)
	studentsCmd.AddCommand(studentsFilterCmd)

	listFlags.register(studentsListCmd)
	studentsListCmd.Flags().IntVar(&listPage, "page", 1, "server page to load")
	studentsListCmd.Flags().IntVar(&listSize, "size", 0, "server page size (default from page_size)")
	studentsListCmd.Flags().BoolVar(&listAll, "all", false, "follow next links and list every student")

	searchFlags.register(studentsSearchCmd)
	studentsSearchCmd.Flags().BoolVar(&searchRollNo, "roll-no", false, "search by roll number instead of name")

	filterFlags.register(studentsFilterCmd)
	studentsFilterCmd.Flags().StringVar(&filterMarks, "marks", "", "total marks to compare against")
	studentsFilterCmd.Flags().StringVar(&filterCmp, "cp", "", "comparison: lt, gt, eq, neq (or <, >, =, !=)")
	studentsFilterCmd.MarkFlagRequired("marks")
}
