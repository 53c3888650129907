package view

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/studentctl/internal/config"
	"github.com/ygelfand/studentctl/internal/grid"
	"github.com/ygelfand/studentctl/internal/roster"
	"github.com/ygelfand/studentctl/internal/ui"
)

var columnWeights = []int{1, 3, 2, 2}

// StudentsView is the students grid: a search box, the sortable table and
// the pager lines for the display page and the server page.
type StudentsView struct {
	data    *roster.Controller
	columns []grid.Column

	table  table.Model
	search textinput.Model
	theme  tint.Tint
	icons  config.IconType

	sort        grid.SortState
	criteria    grid.FilterCriteria
	marks       string
	viewPage    int
	rowsPerPage int

	snap      roster.Snapshot
	processed []grid.Record
	loading   bool

	width  int
	height int
}

type fetchedMsg struct {
	result roster.Result
}

func NewStudentsView(data *roster.Controller, columns []grid.Column, theme tint.Tint, icons config.IconType, rowsPerPage int) *StudentsView {
	ti := textinput.New()
	ti.Placeholder = "Search by name..."
	ti.Prompt = "/ "
	ti.CharLimit = 64

	v := &StudentsView{
		data:        data,
		columns:     columns,
		search:      ti,
		theme:       theme,
		icons:       icons,
		rowsPerPage: max(rowsPerPage, 1),
	}
	v.table = ui.NewTable(v.tableColumns(), theme)
	v.applyInputTheme()
	return v
}

func (v *StudentsView) Init() tea.Cmd {
	v.loading = true
	return v.fetch(v.data.FetchFirst)
}

func (v *StudentsView) fetch(fn func(context.Context) (roster.Result, error)) tea.Cmd {
	return func() tea.Msg {
		r, err := fn(context.Background())
		if err != nil {
			return err
		}
		return fetchedMsg{result: r}
	}
}

func (v *StudentsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.table.SetWidth(v.width)
		v.table.SetHeight(ui.GetTableHeight(v.height))
		v.search.Width = max(v.width/3, 20)
		v.refresh()
		return v, nil

	case ui.ThemeChangedMsg:
		v.theme = msg.Theme
		v.table.SetStyles(ui.TableStyles(v.theme))
		v.applyInputTheme()
		return v, nil

	case fetchedMsg:
		v.loading = false
		if err := v.data.Apply(msg.result); err != nil {
			slog.Error("StudentsView: failed to apply result", "op", msg.result.Op, "error", err)
			return v, nil
		}
		v.snap = v.data.Snapshot()
		v.viewPage = 0
		v.refresh()
		v.table.SetCursor(0)
		return v, nil

	case error:
		// Already logged by the controller; keep showing the previous records
		v.loading = false
		return v, nil

	case ui.MarksFilterMsg:
		v.marks = fmt.Sprintf("marks %s %s", msg.Comparison.Symbol(), strings.TrimSpace(msg.Marks))
		v.loading = true
		return v, v.fetch(func(ctx context.Context) (roster.Result, error) {
			return v.data.FetchByMarks(ctx, msg.Marks, msg.Comparison)
		})

	case ui.FieldFilterMsg:
		v.criteria = msg.Criteria
		v.viewPage = 0
		v.refresh()
		return v, nil

	case ui.FindStudentMsg:
		name := msg.Record.Cell("name")
		v.search.SetValue(name)
		v.search.CursorEnd()
		return v, v.onSearchChanged(name)

	case tea.KeyMsg:
		if v.search.Focused() {
			return v.updateSearch(msg)
		}
		if cmd, handled := v.handleKey(msg); handled {
			return v, cmd
		}
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

func (v *StudentsView) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, studentsKeys.Sort):
		v.toggleSort(int(msg.String()[0] - '1'))
		return nil, true
	case key.Matches(msg, studentsKeys.Search):
		return v.search.Focus(), true
	case key.Matches(msg, studentsKeys.PrevView):
		if v.viewPage > 0 {
			v.viewPage--
			v.refresh()
		}
		return nil, true
	case key.Matches(msg, studentsKeys.NextView):
		if v.viewPage+1 < v.viewPages() {
			v.viewPage++
			v.refresh()
		}
		return nil, true
	case key.Matches(msg, studentsKeys.NextPage):
		if !v.snap.Page.HasNext() {
			return nil, true
		}
		v.loading = true
		return v.fetch(v.data.FetchNext), true
	case key.Matches(msg, studentsKeys.PrevPage):
		if !v.snap.Page.HasPrevious() {
			return nil, true
		}
		v.loading = true
		return v.fetch(v.data.FetchPrevious), true
	case key.Matches(msg, studentsKeys.Reload):
		v.loading = true
		return v.fetch(v.data.FetchFirst), true
	case key.Matches(msg, studentsKeys.Clear):
		v.search.SetValue("")
		v.criteria = nil
		v.marks = ""
		v.sort = grid.SortState{}
		v.loading = true
		return v.fetch(v.data.FetchFirst), true
	}
	return nil, false
}

func (v *StudentsView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, studentsKeys.Blur) {
		v.search.Blur()
		return v, nil
	}

	before := v.search.Value()
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	if after := v.search.Value(); after != before {
		return v, tea.Batch(cmd, v.onSearchChanged(after))
	}
	return v, cmd
}

// onSearchChanged narrows the visible rows and asks the server for the
// matching names. Clearing the box reloads the first page.
func (v *StudentsView) onSearchChanged(value string) tea.Cmd {
	v.viewPage = 0
	v.marks = ""
	v.refresh()
	v.loading = true
	if strings.TrimSpace(value) == "" {
		return v.fetch(v.data.FetchFirst)
	}
	return v.fetch(func(ctx context.Context) (roster.Result, error) {
		return v.data.FetchByName(ctx, value)
	})
}

func (v *StudentsView) toggleSort(idx int) {
	if idx < 0 || idx >= len(v.columns) {
		return
	}
	v.sort = v.sort.Toggle(v.columns[idx].Source)
	slog.Debug("StudentsView: sort", "field", v.sort.Field, "direction", v.sort.Direction)
	v.refresh()
}

func (v *StudentsView) viewPages() int {
	return max(grid.PageCount(len(v.processed), v.rowsPerPage), 1)
}

// refresh reruns the pipeline over the current records and rebuilds the table rows
func (v *StudentsView) refresh() {
	v.processed = grid.Apply(v.snap.Records, grid.NewComparator(v.sort), v.search.Value(), v.criteria)
	if v.viewPage >= v.viewPages() {
		v.viewPage = v.viewPages() - 1
	}

	visible := grid.Paginate(v.processed, v.viewPage, v.rowsPerPage)
	rows := make([]table.Row, 0, len(visible))
	for _, r := range visible {
		row := make(table.Row, 0, len(v.columns))
		for _, c := range v.columns {
			row = append(row, r.Cell(c.Source))
		}
		rows = append(rows, row)
	}

	v.table.SetRows(nil)
	v.table.SetColumns(v.tableColumns())
	v.table.SetRows(rows)
}

func (v *StudentsView) tableColumns() []table.Column {
	widths := ui.ColumnWidths(v.width, columnWeights[:min(len(columnWeights), len(v.columns))])
	cols := make([]table.Column, 0, len(v.columns))
	for i, c := range v.columns {
		w := 12
		if i < len(widths) && v.width > 0 {
			w = widths[i]
		}
		cols = append(cols, table.Column{Title: ui.HeaderTitle(c, v.sort, v.icons), Width: w})
	}
	return cols
}

func (v *StudentsView) applyInputTheme() {
	v.search.PromptStyle = lipgloss.NewStyle().Foreground(ui.Accent(v.theme))
	v.search.TextStyle = lipgloss.NewStyle().Foreground(v.theme.Fg())
	v.search.PlaceholderStyle = ui.MutedStyle(v.theme)
	v.search.Cursor.Style = lipgloss.NewStyle().Foreground(v.theme.Cursor())
}

func (v *StudentsView) View() string {
	muted := ui.MutedStyle(v.theme)

	header := v.search.View()
	var badges []string
	if v.marks != "" {
		badges = append(badges, v.marks)
	}
	for _, val := range v.criteria.Active().Values(v.columns) {
		badges = append(badges, fmt.Sprintf("%q", val))
	}
	if len(badges) > 0 {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, "  ", ui.AccentStyle(v.theme).Render("filters: "+strings.Join(badges, " ")))
	}
	if v.loading {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, "  ", muted.Render("loading..."))
	}

	var body string
	if len(v.processed) == 0 && !v.loading {
		body = lipgloss.NewStyle().
			Padding(2).
			Foreground(v.theme.BrightBlack()).
			Render(grid.NoResultsMessage(v.search.Value(), v.criteria, v.columns))
	} else {
		body = v.table.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, v.viewPager(), v.serverPager())
}

func (v *StudentsView) viewPager() string {
	muted := ui.MutedStyle(v.theme)
	total := len(v.processed)
	if total == 0 {
		return muted.Render("rows 0 of 0")
	}
	from := v.viewPage*v.rowsPerPage + 1
	to := min(from+v.rowsPerPage-1, total)
	return muted.Render(fmt.Sprintf("rows %d-%d of %d  view %d/%d  [ ]", from, to, total, v.viewPage+1, v.viewPages()))
}

func (v *StudentsView) serverPager() string {
	page := v.snap.Page
	enabled := ui.AccentStyle(v.theme)
	disabled := ui.MutedStyle(v.theme)

	prev, next := disabled, disabled
	if page.HasPrevious() {
		prev = enabled
	}
	if page.HasNext() {
		next = enabled
	}

	status := "page -"
	if page.Page > 0 {
		status = fmt.Sprintf("page %d of %d  %d students", page.Page, max(page.TotalPages(), 1), page.Count)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		prev.Render("< p prev"),
		"   ",
		ui.ValueStyle(v.theme).Render(status),
		"   ",
		next.Render("n next >"),
	)
}

// InputFocused reports whether keys are going to the search box
func (v *StudentsView) InputFocused() bool {
	return v.search.Focused()
}

func (v *StudentsView) Columns() []grid.Column {
	return v.columns
}

func (v *StudentsView) Criteria() grid.FilterCriteria {
	return v.criteria
}

func (v *StudentsView) Sort() grid.SortState {
	return v.sort
}

func (v *StudentsView) Query() string {
	return v.search.Value()
}

func (v *StudentsView) ViewPage() int {
	return v.viewPage
}

func (v *StudentsView) Page() roster.PageState {
	return v.snap.Page
}

// Processed returns the pipeline output for every display page
func (v *StudentsView) Processed() []grid.Record {
	return v.processed
}

// Rows returns the table rows of the current display page
func (v *StudentsView) Rows() []table.Row {
	return v.table.Rows()
}

func (v *StudentsView) Loading() bool {
	return v.loading
}

func (v *StudentsView) SetIconType(icons config.IconType) {
	v.icons = icons
	v.refresh()
}

func (v *StudentsView) SetRowsPerPage(n int) {
	v.rowsPerPage = max(n, 1)
	v.viewPage = 0
	v.refresh()
}

func (v *StudentsView) HelpKeys() []ui.HelpKey {
	keys := studentsKeys.help()
	return append(keys,
		ui.HelpKey{Key: "j/down", Desc: "Move Down"},
		ui.HelpKey{Key: "k/up", Desc: "Move Up"},
	)
}
