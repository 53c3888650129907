package ui

import (
	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/studentctl/internal/api"
	"github.com/ygelfand/studentctl/internal/config"
	"github.com/ygelfand/studentctl/internal/grid"
)

type HelpKey struct {
	Key  string
	Desc string
}

type HelpProvider interface {
	HelpKeys() []HelpKey
}

// ThemeChangedMsg is broadcast after the light/dark mode is switched
type ThemeChangedMsg struct {
	Mode  config.ThemeMode
	Theme tint.Tint
}

func (m ThemeChangedMsg) GetTheme() tint.Tint {
	return m.Theme
}

// MarksFilterMsg requests the server-side total marks comparison
type MarksFilterMsg struct {
	Marks      string
	Comparison api.Comparison
}

// FieldFilterMsg replaces the client-side field filters
type FieldFilterMsg struct {
	Criteria grid.FilterCriteria
}

// FindStudentMsg selects a student picked from the local index
type FindStudentMsg struct {
	Record grid.Record
}

const AnnotationSkipBackendCheck = "skip_backend_check"
