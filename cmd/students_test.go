package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ygelfand/studentctl/internal/api"
	"github.com/ygelfand/studentctl/internal/config"
	"github.com/ygelfand/studentctl/internal/grid"
	"github.com/ygelfand/studentctl/internal/presenters"
	"github.com/ygelfand/studentctl/internal/roster"
)

func TestParseCriteria(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    grid.FilterCriteria
		wantErr string
	}{
		{name: "by source", pairs: []string{"name=al"}, want: grid.FilterCriteria{"name": "al"}},
		{name: "by title", pairs: []string{"Roll No=R1", "total marks=9"}, want: grid.FilterCriteria{"roll_no": "R1", "total_marks": "9"}},
		{name: "value with equals", pairs: []string{"name=a=b"}, want: grid.FilterCriteria{"name": "a=b"}},
		{name: "empty value", pairs: []string{"name="}, want: grid.FilterCriteria{"name": ""}},
		{name: "missing separator", pairs: []string{"name"}, wantErr: "want field=value"},
		{name: "unknown field", pairs: []string{"age=3"}, wantErr: "unknown filter field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCriteria(tt.pairs, presenters.StudentColumns)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// pagedServer serves total students in pages with next links
func pagedServer(t *testing.T, total int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))
		var data []map[string]any
		for i := (page - 1) * size; i < min(page*size, total); i++ {
			data = append(data, map[string]any{"id": i + 1, "name": fmt.Sprintf("S%d", i+1)})
		}
		body := map[string]any{"data": data, "total": len(data), "page": page, "size": size, "count": total}
		if page*size < total {
			body["next"] = fmt.Sprintf("/students?page=%d&size=%d", page+1, size)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testClient(t *testing.T, url string) *api.Client {
	t.Helper()
	cfg := config.Default()
	cfg.BaseURL = url
	client, err := api.NewClient(cfg)
	require.NoError(t, err)
	return client
}

func TestLoadPages(t *testing.T) {
	srv := pagedServer(t, 7)
	client := testClient(t, srv.URL)

	t.Run("first page", func(t *testing.T) {
		snap, err := loadPages(context.Background(), client, roster.NewController(client, 3), 1, 3, false)
		require.NoError(t, err)
		assert.Len(t, snap.Records, 3)
		assert.Equal(t, 1, snap.Page.Page)
		assert.True(t, snap.Page.HasNext())
	})

	t.Run("later page", func(t *testing.T) {
		snap, err := loadPages(context.Background(), client, roster.NewController(client, 3), 3, 3, false)
		require.NoError(t, err)
		require.Len(t, snap.Records, 1)
		assert.Equal(t, "S7", snap.Records[0].Cell("name"))
		assert.False(t, snap.Page.HasNext())
	})

	t.Run("all pages", func(t *testing.T) {
		snap, err := loadPages(context.Background(), client, roster.NewController(client, 3), 1, 3, true)
		require.NoError(t, err)
		require.Len(t, snap.Records, 7)
		assert.Equal(t, "S1", snap.Records[0].Cell("name"))
		assert.Equal(t, "S7", snap.Records[6].Cell("name"))
		assert.Equal(t, 3, snap.Page.Page)
	})
}

func TestResolveComparison(t *testing.T) {
	cmp, err := resolveComparison(">", nil)
	require.NoError(t, err)
	assert.Equal(t, api.GreaterThan, cmp)

	_, err = resolveComparison("between", nil)
	require.ErrorIs(t, err, roster.ErrInvalidComparison)
}
