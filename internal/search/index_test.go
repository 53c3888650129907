package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ygelfand/studentctl/internal/api"
	"github.com/ygelfand/studentctl/internal/cache"
	"github.com/ygelfand/studentctl/internal/grid"
)

type pagedLister struct {
	mu      sync.Mutex
	records []grid.Record
	failOn  int
	calls   []api.PageParams
}

func (l *pagedLister) ListStudents(_ context.Context, params api.PageParams) (*api.StudentsResponse, error) {
	l.mu.Lock()
	l.calls = append(l.calls, params)
	l.mu.Unlock()

	if params.Page == l.failOn {
		return nil, errors.New("backend down")
	}
	page := grid.Paginate(l.records, params.Page-1, params.Size)
	return &api.StudentsResponse{Data: page, Page: params.Page, Size: params.Size, Count: len(l.records)}, nil
}

func roster(n int) []grid.Record {
	out := make([]grid.Record, n)
	for i := range out {
		out[i] = grid.Record{"id": i + 1, "name": fmt.Sprintf("Student %03d", i+1), "roll_no": fmt.Sprintf("R-%03d", i+1)}
	}
	out[41]["name"] = "Alice Walker"
	return out
}

func newIndex(t *testing.T) (*RosterIndex, *cache.Manager) {
	t.Helper()
	cm, err := cache.New(t.TempDir(), false)
	require.NoError(t, err)
	return NewIndex(cm, "http://localhost:8000"), cm
}

func TestRosterIndex_ReindexWalksAllPagesInOrder(t *testing.T) {
	idx, cm := newIndex(t)
	lister := &pagedLister{records: roster(250)}

	progress := make(chan IndexProgress, 16)
	require.NoError(t, idx.Reindex(context.Background(), lister, progress))
	close(progress)

	require.Equal(t, 250, idx.Len())
	for i, r := range idx.Records {
		assert.Equal(t, i+1, r["id"])
	}
	assert.Len(t, lister.calls, 3)
	assert.False(t, idx.LastIndexed.IsZero())

	var last IndexProgress
	for p := range progress {
		last = p
	}
	assert.Equal(t, IndexProgress{Current: 3, Total: 3, Message: "Finalizing..."}, last)

	reloaded := NewIndex(cm, "http://localhost:8000")
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 250, reloaded.Len())
}

func TestRosterIndex_ReindexFailureKeepsPreviousIndex(t *testing.T) {
	idx, _ := newIndex(t)
	require.NoError(t, idx.Reindex(context.Background(), &pagedLister{records: roster(50)}, nil))

	err := idx.Reindex(context.Background(), &pagedLister{records: roster(250), failOn: 2}, nil)
	require.Error(t, err)
	assert.Equal(t, 50, idx.Len())
}

func TestRosterIndex_Find(t *testing.T) {
	idx, _ := newIndex(t)
	require.NoError(t, idx.Reindex(context.Background(), &pagedLister{records: roster(120)}, nil))

	got := idx.Find("alcwlk", 5)
	require.NotEmpty(t, got)
	assert.Equal(t, "Alice Walker", got[0].Cell("name"))

	got = idx.Find("R-10", 3)
	assert.Len(t, got, 3)

	assert.Empty(t, idx.Find("zzzzqqq", 5))
}

func TestRosterIndex_LoadMissing(t *testing.T) {
	idx, _ := newIndex(t)
	require.Error(t, idx.Load())
}
