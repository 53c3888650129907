package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ygelfand/studentctl/internal/grid"
)

func TestSortState_Toggle(t *testing.T) {
	t.Parallel()

	s := grid.SortState{Field: "RuleId", Direction: grid.Ascending}

	s = s.Toggle("name")
	assert.Equal(t, grid.SortState{Field: "name", Direction: grid.Ascending}, s)

	s = s.Toggle("name")
	assert.Equal(t, grid.SortState{Field: "name", Direction: grid.Descending}, s)

	s = s.Toggle("name")
	assert.Equal(t, grid.SortState{Field: "name", Direction: grid.Ascending}, s)

	s = s.Toggle("name").Toggle("total_marks")
	assert.Equal(t, grid.SortState{Field: "total_marks", Direction: grid.Ascending}, s)
}

func TestParseSortExpression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr    string
		want    grid.SortState
		wantErr bool
	}{
		{expr: "name", want: grid.SortState{Field: "name", Direction: grid.Ascending}},
		{expr: "total_marks:desc", want: grid.SortState{Field: "total_marks", Direction: grid.Descending}},
		{expr: " roll_no : ASC ", want: grid.SortState{Field: "roll_no", Direction: grid.Ascending}},
		{expr: "", wantErr: true},
		{expr: ":desc", wantErr: true},
		{expr: "name:sideways", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()
			got, err := grid.ParseSortExpression(tt.expr)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
