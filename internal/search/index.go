package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"
	"github.com/ygelfand/studentctl/internal/api"
	"github.com/ygelfand/studentctl/internal/cache"
	"github.com/ygelfand/studentctl/internal/config"
	"github.com/ygelfand/studentctl/internal/grid"
	"golang.org/x/sync/errgroup"
)

const (
	indexPageSize    = 100
	indexConcurrency = 4
)

// Lister fetches one server page of students
type Lister interface {
	ListStudents(ctx context.Context, params api.PageParams) (*api.StudentsResponse, error)
}

// RosterIndex is a local copy of every student used for fuzzy lookups
type RosterIndex struct {
	LastIndexed time.Time     `json:"lastIndexed"`
	Records     []grid.Record `json:"records"`

	mu    sync.RWMutex
	cache *cache.Manager
	key   string
}

type IndexProgress struct {
	Current int
	Total   int
	Message string
}

// NewIndex returns an index stored in cm under the backend's base URL
func NewIndex(cm *cache.Manager, baseURL string) *RosterIndex {
	return &RosterIndex{
		cache: cm,
		key:   fmt.Sprintf("%s/roster_index", baseURL),
	}
}

func (idx *RosterIndex) Load() error {
	var data RosterIndex
	if err := idx.cache.Get(idx.key, &data); err != nil {
		return fmt.Errorf("no index found: %w", err)
	}
	idx.mu.Lock()
	idx.LastIndexed = data.LastIndexed
	idx.Records = data.Records
	idx.mu.Unlock()
	return nil
}

func (idx *RosterIndex) Save() error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.cache.Set(idx.key, idx, 0)
}

// Len returns the number of indexed students
func (idx *RosterIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.Records)
}

func sendProgress(progress chan<- IndexProgress, p IndexProgress) {
	if progress != nil {
		progress <- p
	}
}

// Reindex walks every server page and replaces the index. The first page
// gives the total count; the rest are fetched concurrently.
func (idx *RosterIndex) Reindex(ctx context.Context, lister Lister, progress chan<- IndexProgress) error {
	first, err := lister.ListStudents(ctx, api.PageParams{Page: 1, Size: indexPageSize})
	if err != nil {
		return fmt.Errorf("failed to fetch first page: %w", err)
	}

	size := first.Size
	if size <= 0 {
		size = indexPageSize
	}
	totalPages := max(grid.PageCount(first.Count, size), 1)
	slog.Debug("RosterIndex: reindexing", "count", first.Count, "pages", totalPages, "size", size)

	pages := make([][]grid.Record, totalPages)
	pages[0] = first.Data
	sendProgress(progress, IndexProgress{Current: 1, Total: totalPages, Message: "Fetched page 1"})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(indexConcurrency)

	var done sync.Mutex
	fetched := 1
	for p := 2; p <= totalPages; p++ {
		g.Go(func() error {
			slog.Log(gctx, config.LevelTrace, "RosterIndex: fetching page", "page", p, "size", size)
			res, err := lister.ListStudents(gctx, api.PageParams{Page: p, Size: size})
			if err != nil {
				return fmt.Errorf("page %d: %w", p, err)
			}
			pages[p-1] = res.Data

			done.Lock()
			fetched++
			current := fetched
			done.Unlock()
			sendProgress(progress, IndexProgress{Current: current, Total: totalPages, Message: fmt.Sprintf("Fetched page %d", p)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var records []grid.Record
	for _, page := range pages {
		records = append(records, page...)
	}

	idx.mu.Lock()
	idx.Records = records
	idx.LastIndexed = time.Now()
	idx.mu.Unlock()

	slog.Debug("RosterIndex: reindex complete", "total_entries", len(records))
	sendProgress(progress, IndexProgress{Current: totalPages, Total: totalPages, Message: "Finalizing..."})

	return idx.Save()
}

// Find ranks indexed students by fuzzy match on name and roll number
func (idx *RosterIndex) Find(query string, limit int) []grid.Record {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	matches := fuzzy.FindFrom(query, recordSource(idx.Records))
	sort.Stable(matches)

	var out []grid.Record
	for _, m := range matches {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, idx.Records[m.Index])
	}
	return out
}

type recordSource []grid.Record

func (s recordSource) String(i int) string {
	return strings.TrimSpace(s[i].Cell("name") + " " + s[i].Cell("roll_no"))
}

func (s recordSource) Len() int { return len(s) }
