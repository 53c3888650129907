// Package roster holds the page state of the students backend and the
// requests that move it: page loads, cursor paging and server-side filters.
//
// Every operation is a fetch step that returns a Result and an Apply step
// that commits it. Results are applied in the order they arrive, so the
// last response wins when requests overlap.
package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/ygelfand/studentctl/internal/api"
	"github.com/ygelfand/studentctl/internal/grid"
)

var (
	ErrNoNextPage        = errors.New("no next page")
	ErrNoPreviousPage    = errors.New("already on the first page")
	ErrMissingMarks      = errors.New("marks value is required")
	ErrInvalidComparison = errors.New("invalid marks comparison")
	errUnknownResultKind = errors.New("unknown result kind")
)

// Backend is the part of the API client the controller needs
type Backend interface {
	ListStudents(ctx context.Context, params api.PageParams) (*api.StudentsResponse, error)
	FollowNext(ctx context.Context, next string) (*api.StudentsResponse, error)
	Filter(ctx context.Context, params api.FilterParams) (*api.StudentsResponse, error)
}

// PageState tracks the server-side page
type PageState struct {
	Page  int    `json:"page" yaml:"page"`
	Size  int    `json:"size" yaml:"size"`
	Count int    `json:"count" yaml:"count"`
	Next  string `json:"next,omitempty" yaml:"next,omitempty"`
}

// HasNext reports whether a next cursor is known
func (p PageState) HasNext() bool {
	return p.Next != ""
}

// HasPrevious reports whether a page before the current one exists
func (p PageState) HasPrevious() bool {
	return p.Page > 1
}

// TotalPages is derived from the record count and page size
func (p PageState) TotalPages() int {
	return grid.PageCount(p.Count, p.Size)
}

type Kind int

const (
	KindPage Kind = iota
	KindSearch
)

func (k Kind) String() string {
	switch k {
	case KindPage:
		return "page"
	case KindSearch:
		return "search"
	}
	return "unknown"
}

// Result is a completed fetch waiting to be applied
type Result struct {
	Op       string
	Kind     Kind
	Response *api.StudentsResponse
}

// Snapshot is a copy of the controller state
type Snapshot struct {
	Records []grid.Record
	Page    PageState
}

type Controller struct {
	backend     Backend
	defaultSize int

	mu      sync.RWMutex
	records []grid.Record
	page    PageState
}

// NewController returns a controller in its initial state: no records and no cursor
func NewController(backend Backend, pageSize int) *Controller {
	return &Controller{
		backend:     backend,
		defaultSize: pageSize,
	}
}

// Snapshot returns the current records and page state
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		Records: c.records,
		Page:    c.page,
	}
}

// Apply commits a fetched result. Page results replace the records and the
// page state, search results replace only the records.
func (c *Controller) Apply(r Result) error {
	if r.Response == nil {
		return fmt.Errorf("%s: empty response", r.Op)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	records := r.Response.Data
	if records == nil {
		records = []grid.Record{}
	}

	switch r.Kind {
	case KindPage:
		c.records = records
		c.page = PageState{
			Page:  r.Response.Page,
			Size:  r.Response.Size,
			Count: r.Response.Count,
			Next:  r.Response.Next,
		}
	case KindSearch:
		c.records = records
	default:
		return errUnknownResultKind
	}

	slog.Debug("Roster: applied result", "op", r.Op, "kind", r.Kind, "records", len(records), "page", c.page.Page, "next", c.page.Next)
	return nil
}

// FetchFirst loads the first server page
func (c *Controller) FetchFirst(ctx context.Context) (Result, error) {
	res, err := c.backend.ListStudents(ctx, api.PageParams{Page: 1, Size: c.defaultSize})
	return c.result("load", KindPage, res, err)
}

// FetchNext follows the next cursor
func (c *Controller) FetchNext(ctx context.Context) (Result, error) {
	page := c.Snapshot().Page
	if !page.HasNext() {
		return Result{}, ErrNoNextPage
	}
	res, err := c.backend.FollowNext(ctx, page.Next)
	return c.result("next", KindPage, res, err)
}

// FetchPrevious recomputes the previous page from the current page and size
func (c *Controller) FetchPrevious(ctx context.Context) (Result, error) {
	page := c.Snapshot().Page
	if !page.HasPrevious() {
		return Result{}, ErrNoPreviousPage
	}
	size := page.Size
	if size <= 0 {
		size = c.defaultSize
	}
	res, err := c.backend.ListStudents(ctx, api.PageParams{Page: page.Page - 1, Size: size})
	return c.result("previous", KindPage, res, err)
}

// FetchByName filters by name substring
func (c *Controller) FetchByName(ctx context.Context, name string) (Result, error) {
	res, err := c.backend.Filter(ctx, api.FilterParams{Name: name})
	return c.result("search_name", KindSearch, res, err)
}

// FetchByRollNo filters by roll number substring
func (c *Controller) FetchByRollNo(ctx context.Context, rollNo string) (Result, error) {
	res, err := c.backend.Filter(ctx, api.FilterParams{RollNo: rollNo})
	return c.result("search_roll_no", KindSearch, res, err)
}

// FetchByMarks filters by a total marks comparison
func (c *Controller) FetchByMarks(ctx context.Context, marks string, cmp api.Comparison) (Result, error) {
	value, err := ParseMarks(marks)
	if err != nil {
		return Result{}, err
	}
	if !cmp.Valid() {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidComparison, cmp)
	}
	res, err := c.backend.Filter(ctx, api.FilterParams{TotalMarks: &value, Comparison: cmp})
	return c.result("search_marks", KindSearch, res, err)
}

// ParseMarks validates a marks value typed by the user
func ParseMarks(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMissingMarks
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid marks value %q: %w", s, err)
	}
	return v, nil
}

func (c *Controller) result(op string, kind Kind, res *api.StudentsResponse, err error) (Result, error) {
	if err != nil {
		slog.Error("Roster: request failed", "op", op, "error", err)
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}
	return Result{Op: op, Kind: kind, Response: res}, nil
}

// Load fetches and applies the first page
func (c *Controller) Load(ctx context.Context) error {
	return c.run(c.FetchFirst(ctx))
}

// Next fetches and applies the next page. Without a cursor it does nothing.
func (c *Controller) Next(ctx context.Context) error {
	return c.run(c.FetchNext(ctx))
}

// Previous fetches and applies the previous page. On the first page it does nothing.
func (c *Controller) Previous(ctx context.Context) error {
	return c.run(c.FetchPrevious(ctx))
}

// SearchByName replaces the records with the server name filter result
func (c *Controller) SearchByName(ctx context.Context, name string) error {
	return c.run(c.FetchByName(ctx, name))
}

// SearchByRollNo replaces the records with the server roll number filter result
func (c *Controller) SearchByRollNo(ctx context.Context, rollNo string) error {
	return c.run(c.FetchByRollNo(ctx, rollNo))
}

// SearchByMarks replaces the records with the server marks comparison result
func (c *Controller) SearchByMarks(ctx context.Context, marks string, cmp api.Comparison) error {
	return c.run(c.FetchByMarks(ctx, marks, cmp))
}

func (c *Controller) run(r Result, err error) error {
	if err != nil {
		return err
	}
	return c.Apply(r)
}
