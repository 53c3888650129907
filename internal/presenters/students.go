package presenters

import (
	"fmt"
	"strings"

	"github.com/ygelfand/studentctl/internal/grid"
	"github.com/ygelfand/studentctl/internal/roster"
)

// StudentColumns is the static column set of the students grid
var StudentColumns = []grid.Column{
	{ID: 1, Title: "ID", Source: "id"},
	{ID: 2, Title: "Name", Source: "name"},
	{ID: 3, Title: "Roll No", Source: "roll_no"},
	{ID: 4, Title: "Total Marks", Source: "total_marks"},
}

// ColumnBySource finds a column by field key or title, case-insensitively
func ColumnBySource(columns []grid.Column, name string) (grid.Column, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range columns {
		if strings.ToLower(c.Source) == name || strings.ToLower(c.Title) == name {
			return c, true
		}
	}
	return grid.Column{}, false
}

// StudentsPresenter renders student records through the filter/sort/search pipeline
type StudentsPresenter struct {
	Records  []grid.Record
	Columns  []grid.Column
	Sort     grid.SortState
	Query    string
	Criteria grid.FilterCriteria

	// ViewPage and RowsPerPage select a display slice; RowsPerPage 0 shows everything
	ViewPage    int
	RowsPerPage int

	// Page is the server page the records came from, if any
	Page *roster.PageState
	Name string
}

func (p *StudentsPresenter) columns() []grid.Column {
	if len(p.Columns) == 0 {
		return StudentColumns
	}
	return p.Columns
}

// Processed returns the pipeline output before the display slice
func (p *StudentsPresenter) Processed() []grid.Record {
	return grid.Apply(p.Records, grid.NewComparator(p.Sort), p.Query, p.Criteria)
}

// Visible returns the records of the current display page
func (p *StudentsPresenter) Visible() []grid.Record {
	processed := p.Processed()
	if p.RowsPerPage <= 0 {
		return processed
	}
	return grid.Paginate(processed, p.ViewPage, p.RowsPerPage)
}

func (p *StudentsPresenter) Title() string {
	if p.Name != "" {
		return p.Name
	}
	return "Students"
}

func (p *StudentsPresenter) Headers() []string {
	cols := p.columns()
	headers := make([]string, 0, len(cols))
	for _, c := range cols {
		headers = append(headers, strings.ToUpper(c.Title))
	}
	return headers
}

func (p *StudentsPresenter) Rows() [][]string {
	cols := p.columns()
	var rows [][]string
	for _, r := range p.Visible() {
		row := make([]string, 0, len(cols))
		for _, c := range cols {
			row = append(row, r.Cell(c.Source))
		}
		rows = append(rows, row)
	}
	return rows
}

func (p *StudentsPresenter) Footer() string {
	processed := len(p.Processed())
	if processed == 0 {
		return grid.NoResultsMessage(p.Query, p.Criteria, p.columns())
	}

	var parts []string
	if p.RowsPerPage > 0 {
		parts = append(parts, fmt.Sprintf("rows %d of %d (view page %d/%d)",
			len(p.Visible()), processed, p.ViewPage+1, max(grid.PageCount(processed, p.RowsPerPage), 1)))
	} else {
		parts = append(parts, fmt.Sprintf("%d rows", processed))
	}
	if p.Page != nil && p.Page.Page > 0 {
		parts = append(parts, fmt.Sprintf("server page %d/%d, %d students", p.Page.Page, max(p.Page.TotalPages(), 1), p.Page.Count))
	}
	return strings.Join(parts, " | ")
}

func (p *StudentsPresenter) Raw() interface{} {
	return p.Visible()
}

func (p *StudentsPresenter) SortableColumns() []string {
	cols := p.columns()
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, c.Source)
	}
	return out
}

// SortBy accepts "column" or "column:asc|desc" where column is a field key or title
func (p *StudentsPresenter) SortBy(column string) bool {
	s, err := grid.ParseSortExpression(column)
	if err != nil {
		return false
	}
	c, ok := ColumnBySource(p.columns(), s.Field)
	if !ok {
		return false
	}
	s.Field = c.Source
	p.Sort = s
	return true
}

func (p *StudentsPresenter) DefaultSort() string {
	return ""
}
