package grid_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ygelfand/studentctl/internal/grid"
)

func makeRecords(n int) []grid.Record {
	out := make([]grid.Record, n)
	for i := range out {
		out[i] = grid.Record{"id": i, "name": fmt.Sprintf("s%02d", i)}
	}
	return out
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	records := makeRecords(23)

	tests := []struct {
		name      string
		page      int
		size      int
		wantLen   int
		wantFirst string
	}{
		{name: "first page", page: 0, size: 10, wantLen: 10, wantFirst: "s00"},
		{name: "middle page", page: 1, size: 10, wantLen: 10, wantFirst: "s10"},
		{name: "remainder page", page: 2, size: 10, wantLen: 3, wantFirst: "s20"},
		{name: "past the end", page: 3, size: 10, wantLen: 0},
		{name: "negative page", page: -1, size: 10, wantLen: 0},
		{name: "zero size", page: 0, size: 0, wantLen: 0},
		{name: "page larger than data", page: 0, size: 50, wantLen: 23, wantFirst: "s00"},
		{name: "page times size overflows", page: math.MaxInt/2 + 1, size: 2, wantLen: 0},
		{name: "huge size", page: 0, size: math.MaxInt, wantLen: 23, wantFirst: "s00"},
		{name: "huge size second page", page: 1, size: math.MaxInt, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := grid.Paginate(records, tt.page, tt.size)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.wantLen)
			if tt.size > 0 {
				assert.LessOrEqual(t, len(got), tt.size)
			}
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantFirst, got[0].Cell("name"))
			}
		})
	}
}

func TestPageCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, grid.PageCount(23, 10))
	assert.Equal(t, 2, grid.PageCount(20, 10))
	assert.Equal(t, 0, grid.PageCount(0, 10))
	assert.Equal(t, 0, grid.PageCount(5, 0))
	assert.Equal(t, 1, grid.PageCount(5, math.MaxInt))
}

func TestNoResultsMessage(t *testing.T) {
	t.Parallel()

	columns := []grid.Column{{ID: 1, Title: "Name", Source: "name"}, {ID: 2, Title: "Roll No", Source: "roll_no"}}

	assert.Equal(t, "No results found for", grid.NoResultsMessage("", nil, columns))
	assert.Equal(t,
		`No results found for "zed" "zz" "R-9"`,
		grid.NoResultsMessage(" zed ", grid.FilterCriteria{"roll_no": "R-9", "name": "zz", grid.SearchTextKey: "x"}, columns),
	)
}
