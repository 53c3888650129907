package api

import (
	"fmt"
	"strings"

	"github.com/ygelfand/studentctl/internal/grid"
)

// Comparison is the marks comparison operator understood by the backend
type Comparison string

const (
	LessThan    Comparison = "lt"
	GreaterThan Comparison = "gt"
	Equal       Comparison = "eq"
	NotEqual    Comparison = "neq"
)

// Comparisons lists every operator in display order
var Comparisons = []Comparison{LessThan, GreaterThan, Equal, NotEqual}

// Label is the human readable name of the operator
func (c Comparison) Label() string {
	switch c {
	case LessThan:
		return "Less than"
	case GreaterThan:
		return "Greater than"
	case Equal:
		return "Equal to"
	case NotEqual:
		return "Not equal to"
	}
	return string(c)
}

// Symbol is the short operator form shown next to the marks value
func (c Comparison) Symbol() string {
	switch c {
	case LessThan:
		return "<"
	case GreaterThan:
		return ">"
	case Equal:
		return "="
	case NotEqual:
		return "!="
	}
	return "?"
}

func (c Comparison) Valid() bool {
	switch c {
	case LessThan, GreaterThan, Equal, NotEqual:
		return true
	}
	return false
}

// ParseComparison accepts operator codes (gt) or symbols (>)
func ParseComparison(s string) (Comparison, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Comparisons {
		if v == string(c) || v == c.Symbol() {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid comparison %q (want lt, gt, eq or neq)", s)
}

// PageParams selects a server page
type PageParams struct {
	Page int `url:"page,omitempty" json:"page"`
	Size int `url:"size,omitempty" json:"size"`
}

// FilterParams are the server-side filters of /students/filter
type FilterParams struct {
	Name       string     `url:"name,omitempty" json:"name,omitempty"`
	RollNo     string     `url:"roll_no,omitempty" json:"roll_no,omitempty"`
	TotalMarks *int       `url:"total_marks,omitempty" json:"total_marks,omitempty"`
	Comparison Comparison `url:"cp,omitempty" json:"cp,omitempty"`
	Page       int        `url:"page,omitempty" json:"page,omitempty"`
	Size       int        `url:"size,omitempty" json:"size,omitempty"`
}

// StudentsResponse is the envelope returned by every students endpoint.
// Next and Count are only set by page loads.
type StudentsResponse struct {
	Data  []grid.Record `json:"data" yaml:"data"`
	Total int           `json:"total" yaml:"total"`
	Page  int           `json:"page" yaml:"page"`
	Size  int           `json:"size" yaml:"size"`
	Next  string        `json:"next,omitempty" yaml:"next,omitempty"`
	Count int           `json:"count,omitempty" yaml:"count,omitempty"`
}
