package commands

import (
	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/studentctl/internal/config"
)

// StudentctlOptions holds common command-line flags and options
type StudentctlOptions struct {
	OutputFormat string
	Verbosity    int
	Sort         string
	IconType     config.IconType
	Theme        tint.Tint
}
