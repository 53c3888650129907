package ui

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/TylerBrock/colorjson"
	tint "github.com/lrstanley/bubbletint"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// OutputFormats lists every accepted --output value
var OutputFormats = []string{"table", "json", "json-pretty", "yaml", "csv", "txt", "text"}

// ValidFormat reports whether format is an accepted --output value
func ValidFormat(format string) bool {
	format = normalizeFormat(format)
	for _, f := range OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}

func normalizeFormat(format string) string {
	return strings.Trim(strings.ToLower(format), "\"")
}

// OutputData represents data that can be printed in multiple formats
type OutputData struct {
	Title   string
	Headers []string
	Rows    [][]string
	Footer  string
	Raw     interface{} // Used for JSON/YAML
}

// Print writes the data in the given format
func (d OutputData) Print(w io.Writer, format string, theme tint.Tint) error {
	switch normalizeFormat(format) {
	case "json":
		return d.printJSON(w)
	case "json-pretty":
		return d.printJSONPretty(w)
	case "yaml":
		return d.printYAML(w)
	case "csv":
		return d.printCSV(w)
	case "txt", "text":
		return d.printText(w, theme)
	case "table":
		fallthrough
	default:
		return d.printTable(w, theme)
	}
}

func (d OutputData) printJSONPretty(w io.Writer) error {
	rawJSON, err := json.Marshal(d.Raw)
	if err != nil {
		return err
	}
	var obj any
	if err := json.Unmarshal(rawJSON, &obj); err != nil {
		return err
	}

	f := colorjson.NewFormatter()
	f.Indent = 2
	f.DisabledColor = !IsTerminal(w)
	b, err := f.Marshal(obj)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func (d OutputData) printJSON(w io.Writer) error {
	b, err := json.Marshal(d.Raw)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func (d OutputData) printYAML(w io.Writer) error {
	b, err := yaml.Marshal(d.Raw)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(b))
	return err
}

func (d OutputData) printCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.Headers); err != nil {
		return err
	}
	if err := cw.WriteAll(d.Rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func (d OutputData) printText(w io.Writer, theme tint.Tint) error {
	if d.Title != "" {
		fmt.Fprintln(w, TitleStyle(theme).Render(d.Title))
	}
	for _, row := range d.Rows {
		for i, val := range row {
			if i < len(d.Headers) {
				fmt.Fprintf(w, "%s %s\n", LabelStyle(theme).Render(d.Headers[i]+":"), ValueStyle(theme).Render(val))
			}
		}
		fmt.Fprintln(w)
	}
	if d.Footer != "" {
		fmt.Fprintln(w, MutedStyle(theme).Render(d.Footer))
	}
	return nil
}

func (d OutputData) printTable(w io.Writer, theme tint.Tint) error {
	if d.Title != "" {
		fmt.Fprintln(w, TitleStyle(theme).Render(d.Title))
	}

	rows := d.Rows
	if width := TerminalWidth(w); width > 0 && len(d.Headers) > 0 {
		rows = truncateRows(rows, width/len(d.Headers)-3)
	}

	table := tablewriter.NewWriter(w)
	table.Header(d.Headers)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if d.Footer != "" {
		fmt.Fprintln(w, MutedStyle(theme).Render(d.Footer))
	}
	return nil
}

func truncateRows(rows [][]string, cellWidth int) [][]string {
	if cellWidth <= 3 {
		return rows
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = Ellipsis(cell, cellWidth)
		}
		out[i] = cells
	}
	return out
}
