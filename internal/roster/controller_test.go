package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ygelfand/studentctl/internal/api"
	"github.com/ygelfand/studentctl/internal/grid"
)

type fakeBackend struct {
	pages   map[int]*api.StudentsResponse
	cursors map[string]*api.StudentsResponse
	filter  func(api.FilterParams) (*api.StudentsResponse, error)
	err     error

	listCalls   []api.PageParams
	nextCalls   []string
	filterCalls []api.FilterParams
}

func (f *fakeBackend) ListStudents(_ context.Context, params api.PageParams) (*api.StudentsResponse, error) {
	f.listCalls = append(f.listCalls, params)
	if f.err != nil {
		return nil, f.err
	}
	return f.pages[params.Page], nil
}

func (f *fakeBackend) FollowNext(_ context.Context, next string) (*api.StudentsResponse, error) {
	f.nextCalls = append(f.nextCalls, next)
	if f.err != nil {
		return nil, f.err
	}
	return f.cursors[next], nil
}

func (f *fakeBackend) Filter(_ context.Context, params api.FilterParams) (*api.StudentsResponse, error) {
	f.filterCalls = append(f.filterCalls, params)
	if f.err != nil {
		return nil, f.err
	}
	return f.filter(params)
}

func page(n int, next string, names ...string) *api.StudentsResponse {
	data := make([]grid.Record, 0, len(names))
	for _, name := range names {
		data = append(data, grid.Record{"name": name})
	}
	return &api.StudentsResponse{Data: data, Page: n, Size: 2, Next: next, Count: 5, Total: len(data)}
}

func newBackend() *fakeBackend {
	return &fakeBackend{
		pages: map[int]*api.StudentsResponse{
			1: page(1, "/students?page=2&size=2", "Al", "Bo"),
			2: page(2, "/students?page=3&size=2", "Cy", "Di"),
		},
		cursors: map[string]*api.StudentsResponse{
			"/students?page=2&size=2": page(2, "/students?page=3&size=2", "Cy", "Di"),
			"/students?page=3&size=2": page(3, "", "Ed"),
		},
		filter: func(p api.FilterParams) (*api.StudentsResponse, error) {
			return &api.StudentsResponse{Data: []grid.Record{{"name": "Bo", "total_marks": 90}}}, nil
		},
	}
}

func names(records []grid.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Cell("name"))
	}
	return out
}

func TestController_InitialState(t *testing.T) {
	c := NewController(newBackend(), 2)
	snap := c.Snapshot()
	assert.Empty(t, snap.Records)
	assert.False(t, snap.Page.HasNext())
	assert.False(t, snap.Page.HasPrevious())
}

func TestController_LoadNextPrevious(t *testing.T) {
	b := newBackend()
	c := NewController(b, 2)
	ctx := context.Background()

	require.NoError(t, c.Load(ctx))
	assert.Equal(t, []api.PageParams{{Page: 1, Size: 2}}, b.listCalls)
	snap := c.Snapshot()
	assert.Equal(t, []string{"Al", "Bo"}, names(snap.Records))
	assert.Equal(t, PageState{Page: 1, Size: 2, Count: 5, Next: "/students?page=2&size=2"}, snap.Page)
	assert.Equal(t, 3, snap.Page.TotalPages())

	require.NoError(t, c.Next(ctx))
	require.NoError(t, c.Next(ctx))
	snap = c.Snapshot()
	assert.Equal(t, []string{"Ed"}, names(snap.Records))
	assert.Equal(t, 3, snap.Page.Page)
	assert.False(t, snap.Page.HasNext())

	assert.ErrorIs(t, c.Next(ctx), ErrNoNextPage)
	assert.Len(t, b.nextCalls, 2)

	require.NoError(t, c.Previous(ctx))
	assert.Equal(t, api.PageParams{Page: 2, Size: 2}, b.listCalls[len(b.listCalls)-1])
	snap = c.Snapshot()
	assert.Equal(t, 2, snap.Page.Page)
	assert.Equal(t, []string{"Cy", "Di"}, names(snap.Records))
}

func TestController_PreviousOnFirstPageIsNoop(t *testing.T) {
	b := newBackend()
	c := NewController(b, 2)
	require.NoError(t, c.Load(context.Background()))

	assert.ErrorIs(t, c.Previous(context.Background()), ErrNoPreviousPage)
	assert.Len(t, b.listCalls, 1)
}

func TestController_SearchKeepsPageState(t *testing.T) {
	b := newBackend()
	c := NewController(b, 2)
	ctx := context.Background()
	require.NoError(t, c.Load(ctx))
	before := c.Snapshot().Page

	require.NoError(t, c.SearchByName(ctx, "bo"))
	assert.Equal(t, api.FilterParams{Name: "bo"}, b.filterCalls[0])
	snap := c.Snapshot()
	assert.Equal(t, []string{"Bo"}, names(snap.Records))
	assert.Equal(t, before, snap.Page)

	require.NoError(t, c.SearchByRollNo(ctx, "R-1"))
	assert.Equal(t, api.FilterParams{RollNo: "R-1"}, b.filterCalls[1])
	assert.Equal(t, before, c.Snapshot().Page)
}

func TestController_SearchByMarks(t *testing.T) {
	b := newBackend()
	c := NewController(b, 2)
	ctx := context.Background()

	require.NoError(t, c.SearchByMarks(ctx, " 60 ", api.GreaterThan))
	require.Len(t, b.filterCalls, 1)
	require.NotNil(t, b.filterCalls[0].TotalMarks)
	assert.Equal(t, 60, *b.filterCalls[0].TotalMarks)
	assert.Equal(t, api.GreaterThan, b.filterCalls[0].Comparison)
	assert.Equal(t, []string{"Bo"}, names(c.Snapshot().Records))
}

func TestController_SearchByMarksValidation(t *testing.T) {
	b := newBackend()
	c := NewController(b, 2)
	ctx := context.Background()

	assert.ErrorIs(t, c.SearchByMarks(ctx, "", api.LessThan), ErrMissingMarks)
	assert.Error(t, c.SearchByMarks(ctx, "sixty", api.LessThan))
	assert.ErrorIs(t, c.SearchByMarks(ctx, "60", api.Comparison("gte")), ErrInvalidComparison)
	assert.Empty(t, b.filterCalls)
}

func TestController_FailureLeavesStateUnchanged(t *testing.T) {
	b := newBackend()
	c := NewController(b, 2)
	ctx := context.Background()
	require.NoError(t, c.Load(ctx))
	before := c.Snapshot()

	boom := errors.New("connection refused")
	b.err = boom

	for _, op := range []func() error{
		func() error { return c.Next(ctx) },
		func() error { return c.SearchByName(ctx, "al") },
		func() error { return c.SearchByMarks(ctx, "10", api.Equal) },
		func() error { return c.Load(ctx) },
	} {
		err := op()
		require.ErrorIs(t, err, boom)
		assert.Equal(t, before, c.Snapshot())
	}
}

func TestController_LastAppliedResultWins(t *testing.T) {
	b := newBackend()
	b.filter = func(p api.FilterParams) (*api.StudentsResponse, error) {
		return &api.StudentsResponse{Data: []grid.Record{{"name": "match-" + p.Name}}}, nil
	}
	c := NewController(b, 2)
	ctx := context.Background()

	first, err := c.FetchByName(ctx, "a")
	require.NoError(t, err)
	second, err := c.FetchByName(ctx, "al")
	require.NoError(t, err)

	// the earlier request answers last
	require.NoError(t, c.Apply(second))
	require.NoError(t, c.Apply(first))

	assert.Equal(t, []string{"match-a"}, names(c.Snapshot().Records))
}

func TestController_ApplyNilData(t *testing.T) {
	c := NewController(newBackend(), 2)
	require.NoError(t, c.Apply(Result{Op: "search_name", Kind: KindSearch, Response: &api.StudentsResponse{}}))
	assert.NotNil(t, c.Snapshot().Records)
	assert.Empty(t, c.Snapshot().Records)

	assert.Error(t, c.Apply(Result{Op: "x", Kind: KindSearch}))
}

func TestParseMarks(t *testing.T) {
	v, err := ParseMarks("42")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = ParseMarks("  ")
	assert.ErrorIs(t, err, ErrMissingMarks)
}
