package grid

import (
	"fmt"
	"sort"
	"strings"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection accepts "asc" or "desc" in any case
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Ascending, "":
		return Ascending, nil
	case Descending:
		return Descending, nil
	}
	return "", fmt.Errorf("invalid sort direction %q (want asc or desc)", s)
}

// SortState is the active sort column and its direction
type SortState struct {
	Field     string    `json:"field" yaml:"field"`
	Direction Direction `json:"direction" yaml:"direction"`
}

// Toggle returns the state after a header click on field: the same field
// flips from ascending to descending, anything else starts ascending.
func (s SortState) Toggle(field string) SortState {
	if s.Field == field && s.Direction != Descending {
		return SortState{Field: field, Direction: Descending}
	}
	return SortState{Field: field, Direction: Ascending}
}

// ParseSortExpression parses "field" or "field:asc|desc"
func ParseSortExpression(expr string) (SortState, error) {
	field, dir, _ := strings.Cut(expr, ":")
	field = strings.TrimSpace(field)
	if field == "" {
		return SortState{}, fmt.Errorf("empty sort expression")
	}
	d, err := ParseDirection(dir)
	if err != nil {
		return SortState{}, err
	}
	return SortState{Field: field, Direction: d}, nil
}

// Comparator returns a negative, zero or positive value like strings.Compare
type Comparator func(a, b Record) int

// NewComparator builds the comparator for a sort state
func NewComparator(s SortState) Comparator {
	field := s.Field
	if s.Direction == Descending {
		return func(a, b Record) int {
			return CompareValues(b[field], a[field])
		}
	}
	return func(a, b Record) int {
		return CompareValues(a[field], b[field])
	}
}

type tagged struct {
	rec   Record
	index int
}

// StableSort returns a sorted copy of records. Equal records keep their
// original relative order through an explicit index tie-break.
func StableSort(records []Record, cmp Comparator) []Record {
	tags := make([]tagged, len(records))
	for i, r := range records {
		tags[i] = tagged{rec: r, index: i}
	}

	sort.Slice(tags, func(i, j int) bool {
		if cmp != nil {
			if order := cmp(tags[i].rec, tags[j].rec); order != 0 {
				return order < 0
			}
		}
		return tags[i].index < tags[j].index
	})

	out := make([]Record, len(tags))
	for i, t := range tags {
		out[i] = t.rec
	}
	return out
}
